package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	Configure(Config{Level: WarnLevel, Output: &buf})

	Info().Msg("dropped")
	courses := Component("courses")
	courses.Warn().Str("code", "CS101").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "courses", entry["component"])
	assert.Equal(t, "CS101", entry["code"])
	assert.Equal(t, "kept", entry["message"])
}

func TestGetReturnsConfiguredLogger(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	Configure(Config{Level: DebugLevel, Output: &buf})
	lgr := Get()
	lgr.Debug().Msg("visible")

	assert.Contains(t, buf.String(), `"message":"visible"`)
}

func TestConfigureUnknownLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	Configure(Config{Level: "verbose", Output: &bytes.Buffer{}})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestParseFormat(t *testing.T) {
	assert.True(t, ParseFormat("text"))
	assert.True(t, ParseFormat(" Console "))
	assert.False(t, ParseFormat("json"))
	assert.False(t, ParseFormat(""))
}
