// Package services holds the course, student and feedback registries.
package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/coursefeedback/internal/pkg/events"
)

// Services groups every registry used by the controllers
type Services struct {
	CourseService   CourseService
	StudentService  StudentService
	FeedbackService FeedbackService
}

// publish sends an event after a successful write. Delivery failures are logged only.
func publish(ctx context.Context, publisher events.Publisher, log zerolog.Logger, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("event", event.Type).Str("key", event.Key).Msg("Failed to publish event")
	}
}

func normalize(s string) string {
	return strings.TrimSpace(s)
}
