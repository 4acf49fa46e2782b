// Package registry holds the in-memory activity store backing the sign-up service.
package registry

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"example.com/extracurricular/internal/domain"
	"example.com/extracurricular/internal/observability"
)

// InMemoryRegistry stores activities in memory. The activity set is fixed at
// construction; only rosters change afterwards.
type InMemoryRegistry struct {
	mu         sync.RWMutex
	activities map[string]domain.Activity
}

// NewInMemoryRegistry constructs a registry populated with the given seed.
func NewInMemoryRegistry(seed []domain.Activity) *InMemoryRegistry {
	r := &InMemoryRegistry{activities: make(map[string]domain.Activity, len(seed))}
	for _, activity := range seed {
		r.activities[activity.Name] = dedupe(activity.Clone())
	}
	for name, activity := range r.activities {
		observability.SetParticipants(name, len(activity.Participants))
	}
	return r
}

// List implements domain.Registry.
func (r *InMemoryRegistry) List(ctx context.Context) (map[string]domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.activities))
	for name, activity := range r.activities {
		out[name] = activity.Clone()
	}
	return out, nil
}

// Get returns a copy of a single activity.
func (r *InMemoryRegistry) Get(ctx context.Context, name string) (domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	return activity.Clone(), nil
}

// AddParticipant implements domain.Registry.
func (r *InMemoryRegistry) AddParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	if activity.HasParticipant(email) {
		return domain.Activity{}, domain.ErrAlreadySignedUp
	}

	activity.Participants = append(slices.Clone(activity.Participants), email)
	activity.Revision++
	r.activities[name] = activity
	return activity.Clone(), nil
}

// RemoveParticipant implements domain.Registry.
func (r *InMemoryRegistry) RemoveParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	idx := slices.Index(activity.Participants, email)
	if idx < 0 {
		return domain.Activity{}, domain.ErrParticipantNotFound
	}

	activity.Participants = slices.Delete(slices.Clone(activity.Participants), idx, idx+1)
	activity.Revision++
	r.activities[name] = activity
	return activity.Clone(), nil
}

// Snapshot returns a deep copy of every activity.
func (r *InMemoryRegistry) Snapshot() []domain.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Activity, 0, len(r.activities))
	for _, activity := range r.activities {
		out = append(out, activity.Clone())
	}
	slices.SortFunc(out, func(a, b domain.Activity) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Restore replaces the registry contents with a previous Snapshot. Revisions
// never move backwards: an activity whose roster changed since the snapshot
// comes back with a revision past its current one.
func (r *InMemoryRegistry) Restore(snapshot []domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	restored := make(map[string]domain.Activity, len(snapshot))
	for _, activity := range snapshot {
		activity = activity.Clone()
		if current, ok := r.activities[activity.Name]; ok && current.Revision != activity.Revision {
			activity.Revision = max(current.Revision, activity.Revision) + 1
		}
		restored[activity.Name] = activity
		observability.SetParticipants(activity.Name, len(activity.Participants))
	}
	for name := range r.activities {
		if _, ok := restored[name]; !ok {
			observability.ForgetActivity(name)
		}
	}
	r.activities = restored
}

// dedupe keeps the first occurrence of each email so seeded rosters honour uniqueness.
func dedupe(activity domain.Activity) domain.Activity {
	seen := make(map[string]struct{}, len(activity.Participants))
	out := activity.Participants[:0]
	for _, email := range activity.Participants {
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	activity.Participants = out
	return activity
}
