package domain

import "slices"

// Activity is an extracurricular offering with its schedule, capacity and roster.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
	// Revision increases by one with every roster change, so consumers can
	// order snapshots of the same activity.
	Revision int64
}

// Clone returns a deep copy so callers never share the participant slice.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = slices.Clone(a.Participants)
	if out.Participants == nil {
		out.Participants = []string{}
	}
	return out
}

// HasParticipant reports whether email is enrolled.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// SpotsLeft is informational only; capacity is not enforced on signup.
func (a Activity) SpotsLeft() int {
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}

// ChangeType identifies the kind of roster mutation.
type ChangeType string

const (
	ChangeSignedUp ChangeType = "participant.signed_up"
	ChangeRemoved  ChangeType = "participant.removed"
)

// RosterChange describes a single applied mutation of an activity roster.
type RosterChange struct {
	Type     ChangeType
	Activity Activity
	Email    string
}
