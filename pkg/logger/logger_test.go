package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, FormatText, ParseFormat("xml"))
}

func TestNewWithOptions_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(&buf, slog.LevelInfo, FormatJSON)

	l.Debug("hidden")
	l.Warn("rule failed", "rule_type", "statement.select.draft-filter", Error(errors.New("boom")))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "rule failed", record["msg"])
	assert.Equal(t, "statement.select.draft-filter", record["rule_type"])
	assert.Equal(t, "boom", record["error"])
}

func TestNewWithOptions_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(&buf, slog.LevelDebug, FormatText)

	l.Debug("scanning", "program", "ZPROG")
	out := buf.String()
	assert.Contains(t, out, "scanning")
	assert.Contains(t, out, "program=ZPROG")
	assert.NotContains(t, out, "\x1b[")
}

func TestLogger_ImplementsInterface(t *testing.T) {
	var _ Interface = New()
	var _ Interface = slog.Default()
	assert.NotNil(t, NewWithLevel(slog.LevelWarn).GetSlogLogger())
}
