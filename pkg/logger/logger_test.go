package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsLevel(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want slog.Level
	}{
		{name: "explicit", opts: Options{Level: " WARN "}, want: slog.LevelWarn},
		{name: "fatal is critical", opts: Options{Level: "fatal"}, want: LevelCritical},
		{name: "empty in production", opts: Options{Env: "production"}, want: slog.LevelInfo},
		{name: "empty in development", opts: Options{Env: "development"}, want: slog.LevelDebug},
		{name: "unknown in development", opts: Options{Env: "Development", Level: "loud"}, want: slog.LevelDebug},
		{name: "explicit wins over development", opts: Options{Env: "development", Level: "error"}, want: slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.level())
		})
	}
}

func TestOptionsFormat(t *testing.T) {
	assert.Equal(t, "text", Options{Format: "TEXT"}.format())
	assert.Equal(t, "json", Options{Format: "json"}.format())
	assert.Equal(t, "json", Options{Format: "xml"}.format())
	assert.Equal(t, "json", Options{}.format())
}

func TestNewWithOptionsTagsService(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(&buf, Options{Env: "production", Service: " court-register "})

	log.Debug("dropped")
	log.Info("court: created", "courtId", "ACCRYC")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "court-register", record["service"])
	assert.Equal(t, "ACCRYC", record["courtId"])
	assert.Equal(t, "INFO", record["level"])
}

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(&buf, Options{Level: "critical"})

	log.Error("filtered")
	log.Critical("db: migrations failed")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "CRITICAL", record["level"])
	assert.Equal(t, "db: migrations failed", record["msg"])
}

func TestErrorHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.BusinessError("court: not found", nil)
	assert.Empty(t, buf.String())

	log.BusinessError("court: not found", errors.New("no rows"), "courtId", "ACCRYC")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `err="no rows"`)
	assert.Contains(t, buf.String(), "courtId=ACCRYC")

	buf.Reset()
	log.InternalError("db: ping failed", errors.New("refused"))
	assert.Contains(t, buf.String(), "level=ERROR")
}
