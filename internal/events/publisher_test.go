package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"example.com/extracurricular/internal/domain"
)

type stubWriter struct {
	topic    string
	messages []kafka.Message
	err      error
	deadline bool
}

func (s *stubWriter) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	s.topic = topic
	s.messages = append(s.messages, msgs...)
	_, s.deadline = ctx.Deadline()
	return s.err
}

func TestPublisherWritesKeyedMessage(t *testing.T) {
	writer := &stubWriter{}
	publisher := NewPublisher(writer, "", time.Second)
	fixed := time.Date(2025, time.September, 1, 15, 30, 0, 0, time.UTC)
	publisher.now = func() time.Time { return fixed }

	err := publisher.RosterChanged(context.Background(), domain.RosterChange{
		Type: domain.ChangeSignedUp,
		Activity: domain.Activity{
			Name:            "Chess Club",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "new@mergington.edu"},
			Revision:        7,
		},
		Email: "new@mergington.edu",
	})
	require.NoError(t, err)

	require.Equal(t, DefaultTopic, writer.topic)
	require.True(t, writer.deadline)
	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	require.Equal(t, "Chess Club", string(msg.Key))
	require.Equal(t, "event_type", msg.Headers[0].Key)
	require.Equal(t, "participant.signed_up", string(msg.Headers[0].Value))
	require.Equal(t, "revision", msg.Headers[2].Key)
	require.Equal(t, "7", string(msg.Headers[2].Value))

	var event RosterEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	require.Equal(t, "new@mergington.edu", event.Email)
	require.Equal(t, []string{"michael@mergington.edu", "new@mergington.edu"}, event.Participants)
	require.Equal(t, 12, event.MaxParticipants)
	require.Equal(t, int64(7), event.Revision)
	require.True(t, fixed.Equal(event.OccurredAt))
	_, err = uuid.Parse(event.EventID)
	require.NoError(t, err)
}

func TestPublisherWrapsWriterError(t *testing.T) {
	writer := &stubWriter{err: errors.New("leader not available")}
	publisher := NewPublisher(writer, "custom_topic", 0)

	err := publisher.RosterChanged(context.Background(), domain.RosterChange{
		Type:     domain.ChangeRemoved,
		Activity: domain.Activity{Name: "Art Club"},
		Email:    "amelia@mergington.edu",
	})
	require.ErrorIs(t, err, writer.err)
	require.Equal(t, "custom_topic", writer.topic)
	require.False(t, writer.deadline)
}

func TestNewRosterEventCopiesParticipants(t *testing.T) {
	participants := []string{"a@mergington.edu"}
	event := NewRosterEvent(domain.RosterChange{
		Type:     domain.ChangeSignedUp,
		Activity: domain.Activity{Name: "Chess Club", Participants: participants},
		Email:    "a@mergington.edu",
	}, time.Now())

	participants[0] = "changed@mergington.edu"
	require.Equal(t, "a@mergington.edu", event.Participants[0])
}
