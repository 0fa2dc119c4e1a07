package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	log.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestNewLogger_LevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerOptions{Level: "warn", Format: "json", Output: &buf})

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestNewLogger_VerboseOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerOptions{Level: "error", Format: "json", Output: &buf, Verbose: true})

	log.Debug().Msg("verbose")

	assert.Contains(t, buf.String(), "verbose")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerOptions{Level: "info", Format: "json", Output: &buf})

	log.WithComponent("manifest").
		WithEnvironment("production").
		WithScript("worker-production").
		Info().Msg("resolved")

	out := buf.String()
	assert.Contains(t, out, `"component":"manifest"`)
	assert.Contains(t, out, `"environment":"production"`)
	assert.Contains(t, out, `"script":"worker-production"`)
}

func TestNewDefaultLogger(t *testing.T) {
	log := NewDefaultLogger()
	assert.NotNil(t, log)
	assert.True(t, strings.EqualFold(log.GetLevel().String(), "info"))
}
