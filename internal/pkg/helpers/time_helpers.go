package helpers

import (
	"strings"
	"time"

	"github.com/yigit/coursefeedback/internal/pkg/logger"
)

// ParseDuration parses a duration string, returning defaultDuration when it is empty,
// malformed or not positive.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	durationStr = strings.TrimSpace(durationStr)
	if durationStr == "" {
		return defaultDuration
	}

	duration, err := time.ParseDuration(durationStr)
	if err != nil || duration <= 0 {
		logger.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Invalid duration, using default")
		return defaultDuration
	}
	return duration
}
