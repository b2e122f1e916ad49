package events

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKafkaPublisherBatchTimeout(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{name: "unset uses default", in: 0, want: DefaultBatchTimeout},
		{name: "configured", in: 25 * time.Millisecond, want: 25 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := NewKafkaPublisher(KafkaConfig{
				Brokers:      []string{"localhost:9092"},
				Topic:        "course-feedback-events",
				BatchTimeout: tt.in,
			})
			require.NoError(t, err)
			t.Cleanup(func() { _ = publisher.Close() })

			writer, ok := publisher.writer.(*kafkago.Writer)
			require.True(t, ok)
			assert.Equal(t, tt.want, writer.BatchTimeout)
			assert.Less(t, writer.BatchTimeout, time.Second)
		})
	}
}
