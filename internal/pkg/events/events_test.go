package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursefeedback/internal/pkg/events"
)

type mockWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherPublish(t *testing.T) {
	writer := &mockWriter{}
	publisher, err := events.NewKafkaPublisherWithWriter(writer, "course-feedback")
	require.NoError(t, err)

	event := events.New(events.FeedbackSubmitted, "CS101", map[string]string{"studentEmail": "a@x.com"})
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "course-feedback", msg.Topic)
	assert.Equal(t, "CS101", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, events.FeedbackSubmitted, string(msg.Headers[0].Value))

	var payload events.Event
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, events.FeedbackSubmitted, payload.Type)
	assert.Equal(t, "a@x.com", payload.Attributes["studentEmail"])
	assert.False(t, payload.OccurredAt.IsZero())

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisherPropagatesWriterError(t *testing.T) {
	writer := &mockWriter{err: errors.New("broker down")}
	publisher, err := events.NewKafkaPublisherWithWriter(writer, "course-feedback")
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), events.New(events.CourseDeleted, "CS101", nil))
	assert.EqualError(t, err, "broker down")
}

func TestKafkaPublisherRejectsUntypedEvent(t *testing.T) {
	publisher, err := events.NewKafkaPublisherWithWriter(&mockWriter{}, "t")
	require.NoError(t, err)

	assert.Error(t, publisher.Publish(context.Background(), events.Event{Key: "x"}))
}

func TestNewKafkaPublisherValidation(t *testing.T) {
	_, err := events.NewKafkaPublisher(events.KafkaConfig{Topic: "t"})
	assert.Error(t, err)

	_, err = events.NewKafkaPublisher(events.KafkaConfig{Brokers: []string{"localhost:9092"}})
	assert.Error(t, err)

	_, err = events.NewKafkaPublisherWithWriter(nil, "t")
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	p := events.NewNoopPublisher()
	assert.NoError(t, p.Publish(context.Background(), events.New(events.CourseCreated, "CS101", nil)))
	assert.NoError(t, p.Close())
}
