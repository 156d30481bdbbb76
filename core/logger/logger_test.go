package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with service and level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithJSONFormatter(),
			logger.WithService("sessionctl"),
			logger.WithLevel(slog.LevelWarn),
		)

		log.Info("dropped")
		log.Warn("kept", logger.SessionID("s1"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "kept", rec["msg"])
		assert.Equal(t, "sessionctl", rec["service"])
		assert.Equal(t, "s1", rec["session_id"])
	})

	t.Run("text output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("hello", logger.Table("clients"))

		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "table=clients")
	})

	t.Run("discard drops everything", func(t *testing.T) {
		t.Parallel()
		log := logger.Discard()
		assert.False(t, log.Enabled(t.Context(), slog.LevelError))
	})
}
