package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/extracurricular/internal/domain"
	"example.com/extracurricular/internal/observability"
)

// DefaultTopic carries roster events when no topic is configured.
const DefaultTopic = "activity_roster_events"

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// Publisher turns roster changes into Kafka messages. It implements domain.RosterNotifier.
type Publisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
	now     func() time.Time
}

// NewPublisher constructs a Publisher writing to topic through writer.
func NewPublisher(writer messageWriter, topic string, timeout time.Duration) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer:  writer,
		topic:   topic,
		timeout: timeout,
		now:     time.Now,
	}
}

// RosterChanged publishes the change keyed by activity name.
func (p *Publisher) RosterChanged(ctx context.Context, change domain.RosterChange) error {
	event := NewRosterEvent(change, p.now())
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode roster event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg := kafka.Message{
		Key:   []byte(event.Activity),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "revision", Value: []byte(strconv.FormatInt(event.Revision, 10))},
		},
	}
	if err := p.writer.WriteMessages(ctx, p.topic, msg); err != nil {
		observability.RecordPublishFailure()
		return fmt.Errorf("publish roster event to %s: %w", p.topic, err)
	}
	observability.RecordPublished()
	return nil
}
