package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in, zerolog.InfoLevel))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(Config{Level: "debug", Out: &buf}), "scheduler")

	l.Debug().Int("pending", 2).Msg("tick")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "scheduler", entry["component"])
	assert.Equal(t, "tick", entry["message"])
	assert.EqualValues(t, 2, entry["pending"])
	assert.Contains(t, entry, "time")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Out: &buf})

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Console: true, Out: &buf})

	l.Info().Str("mode", "local").Msg("timer ready")

	out := buf.String()
	assert.True(t, strings.Contains(out, "timer ready"), out)
	assert.True(t, strings.Contains(out, "mode="), out)
	assert.False(t, strings.HasPrefix(out, "{"), "console output should not be JSON")
}
