// Package events publishes roster change events to Kafka.
package events

import (
	"time"

	"github.com/google/uuid"

	"example.com/extracurricular/internal/domain"
)

// RosterEvent is the message emitted after a participant joins or leaves an activity.
type RosterEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	Activity        string    `json:"activity"`
	Email           string    `json:"email"`
	Participants    []string  `json:"participants"`
	MaxParticipants int       `json:"max_participants"`
	Revision        int64     `json:"revision"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// NewRosterEvent builds the wire event for a roster change.
func NewRosterEvent(change domain.RosterChange, now time.Time) RosterEvent {
	activity := change.Activity.Clone()
	return RosterEvent{
		EventID:         uuid.NewString(),
		EventType:       string(change.Type),
		Activity:        activity.Name,
		Email:           change.Email,
		Participants:    activity.Participants,
		MaxParticipants: activity.MaxParticipants,
		Revision:        activity.Revision,
		OccurredAt:      now.UTC(),
	}
}
