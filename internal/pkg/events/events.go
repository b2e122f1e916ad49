package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Event types published after successful writes
const (
	CourseCreated     = "course.created"
	CourseUpdated     = "course.updated"
	CourseDeleted     = "course.deleted"
	StudentCreated    = "student.created"
	StudentEnrolled   = "student.enrolled"
	FeedbackSubmitted = "feedback.submitted"
	FeedbackUpdated   = "feedback.updated"
	FeedbackDeleted   = "feedback.deleted"
)

// Event is the JSON payload written to the broker.
type Event struct {
	Type       string            `json:"type"`
	Key        string            `json:"key"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// New builds an event stamped with the current UTC time.
func New(eventType, key string, attrs map[string]string) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Writer abstracts the Kafka writer for tests.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaConfig holds the broker settings used by NewKafkaPublisher.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	BatchTimeout time.Duration
}

// DefaultBatchTimeout bounds how long a single event waits for its batch to flush.
const DefaultBatchTimeout = 10 * time.Millisecond

// KafkaPublisher writes events to a single topic keyed by the entity's natural key.
type KafkaPublisher struct {
	writer Writer
	topic  string
}

// NewKafkaPublisher creates a publisher backed by a kafka-go writer.
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers list is empty")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("kafka topic is empty")
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{writer: writer}, nil
}

// NewKafkaPublisherWithWriter creates a publisher using a custom writer (for tests).
// A non-empty topic is set on every message; leave it empty when the writer owns the topic.
func NewKafkaPublisherWithWriter(w Writer, topic string) (*KafkaPublisher, error) {
	if w == nil {
		return nil, errors.New("kafka writer is nil")
	}
	return &KafkaPublisher{writer: w, topic: topic}, nil
}

// Publish implements Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Type == "" {
		return errors.New("event type is empty")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: p.topic,
		Key:   []byte(event.Key),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	})
}

// Close implements Publisher.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// NewNoopPublisher returns a publisher that does nothing.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
