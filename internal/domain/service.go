// Package domain defines the business logic for the extracurricular sign-up service.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"example.com/extracurricular/internal/observability"
)

var (
	// ErrActivityNotFound is returned when no activity carries the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp is returned when the email is already on the roster.
	ErrAlreadySignedUp = errors.New("student already signed up for this activity")
	// ErrParticipantNotFound is returned when removing an email that is not enrolled.
	ErrParticipantNotFound = errors.New("participant not found in this activity")
)

// Registry captures the storage operations on the activity set.
// AddParticipant and RemoveParticipant must check and mutate atomically and
// return the updated activity.
type Registry interface {
	List(ctx context.Context) (map[string]Activity, error)
	AddParticipant(ctx context.Context, activity, email string) (Activity, error)
	RemoveParticipant(ctx context.Context, activity, email string) (Activity, error)
}

// RosterNotifier is told about every applied roster change.
type RosterNotifier interface {
	RosterChanged(ctx context.Context, change RosterChange) error
}

type noopNotifier struct{}

func (noopNotifier) RosterChanged(context.Context, RosterChange) error { return nil }

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the notifier receiving roster changes.
func WithNotifier(n RosterNotifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service orchestrates sign-up workflows against a Registry.
type Service struct {
	registry Registry
	notifier RosterNotifier
	logger   *slog.Logger
}

// NewService constructs a Service.
func NewService(registry Registry, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		notifier: noopNotifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	return s.registry.List(ctx)
}

// Signup enrolls email in the named activity and returns a confirmation message.
func (s *Service) Signup(ctx context.Context, activityName, email string) (string, error) {
	activity, err := s.registry.AddParticipant(ctx, activityName, email)
	if err != nil {
		observability.RecordRejection(rejectionReason(err))
		return "", err
	}

	observability.RecordSignup(activity.Name, len(activity.Participants))
	s.notify(ctx, RosterChange{Type: ChangeSignedUp, Activity: activity, Email: email})
	return fmt.Sprintf("Signed up %s for %s", email, activity.Name), nil
}

// RemoveParticipant drops email from the named activity and returns a confirmation message.
func (s *Service) RemoveParticipant(ctx context.Context, activityName, email string) (string, error) {
	activity, err := s.registry.RemoveParticipant(ctx, activityName, email)
	if err != nil {
		observability.RecordRejection(rejectionReason(err))
		return "", err
	}

	observability.RecordRemoval(activity.Name, len(activity.Participants))
	s.notify(ctx, RosterChange{Type: ChangeRemoved, Activity: activity, Email: email})
	return fmt.Sprintf("Unregistered %s from %s", email, activity.Name), nil
}

// notify never fails the caller: the roster change is already applied. It runs
// outside the registry lock, so concurrent changes may be delivered out of
// order; change.Activity.Revision gives their true order.
func (s *Service) notify(ctx context.Context, change RosterChange) {
	if err := s.notifier.RosterChanged(ctx, change); err != nil {
		s.logger.Warn("roster notification failed",
			"activity", change.Activity.Name,
			"event_type", string(change.Type),
			"error", err,
		)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "activity_not_found"
	case errors.Is(err, ErrAlreadySignedUp):
		return "already_signed_up"
	case errors.Is(err, ErrParticipantNotFound):
		return "participant_not_found"
	default:
		return "internal"
	}
}
