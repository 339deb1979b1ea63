package logger

import (
	"bytes"
	"strings"
	"testing"

	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_DefaultsToInfoConsole(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	assert.Equal(t, "info", Logger.GetLevel().String())
	assert.Equal(t, "info", zlog.Logger.GetLevel().String())

	Logger.Debug().Msg("hidden")
	Logger.Info().Msg("hello")
	out := strings.TrimSpace(buf.String())
	require.NotEmpty(t, out)
	assert.False(t, strings.HasPrefix(out, "{"), "expected console output, got %q", out)
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, "hidden")
}

func TestInitWithWriter_InvalidLevelFallsBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("LOG_FORMAT", "console")

	var buf bytes.Buffer
	InitWithWriter(&buf)
	assert.Equal(t, "info", Logger.GetLevel().String())
}

func TestInitWithWriter_JSON(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	InitWithWriter(&buf)

	Logger.Debug().Str("op", "list_events").Msg("hello")
	out := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(out, "{") && strings.HasSuffix(out, "}"), out)
	assert.Contains(t, out, `"message":"hello"`)
	assert.Contains(t, out, `"op":"list_events"`)
	assert.Contains(t, out, `"service":"events-api"`)
}
