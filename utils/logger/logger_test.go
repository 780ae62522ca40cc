package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", FormatJSON, &buf)

	l.Info().Msg("hidden")
	l.Warn().Str("file", "a.pdf").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"file":"a.pdf"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewBadLevel(t *testing.T) {
	l := New("loud", FormatJSON, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", FormatConsole, &buf)
	l.Debug().Msg("索引完成")
	assert.Contains(t, buf.String(), "索引完成")
	assert.NotContains(t, buf.String(), `"message"`)
}
