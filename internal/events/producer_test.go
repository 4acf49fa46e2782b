package events

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

func TestWriterFlushesSingleMessagesPromptly(t *testing.T) {
	producer := NewKafkaProducer([]string{"localhost:9092"})
	t.Cleanup(func() { _ = producer.Close() })

	writer := producer.writerForTopic("activity_roster_events")

	require.Equal(t, "activity_roster_events", writer.Topic)
	require.Equal(t, 1, writer.BatchSize)
	require.LessOrEqual(t, writer.BatchTimeout, 10*time.Millisecond)
	require.False(t, writer.Async)
	require.IsType(t, &kafka.Hash{}, writer.Balancer)
	require.Same(t, writer, producer.writerForTopic("activity_roster_events"))
}
