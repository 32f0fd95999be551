package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapter_FieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterTo(&buf, zerolog.DebugLevel, false)

	logger.Info(context.Background(), "session restored", Fields{"user_id": "u-1"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "session restored", entry["message"])
	assert.Equal(t, "u-1", entry["user_id"])
}

func TestZerologAdapter_ErrorCarriesErr(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterTo(&buf, zerolog.DebugLevel, false)

	logger.Error(context.Background(), "refresh failed", errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
}

func TestZerologAdapter_WithAddsPersistentFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterTo(&buf, zerolog.DebugLevel, false).
		With(Fields{"component": "session"})

	logger.Debug(context.Background(), "tick")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "session", entry["component"])
}

func TestZerologAdapter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterTo(&buf, zerolog.WarnLevel, false)

	logger.Info(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	logger.Warn(context.Background(), "kept")
	assert.NotZero(t, buf.Len())
}

func TestNopLoggerDoesNothing(t *testing.T) {
	logger := Nop()
	logger.Info(context.Background(), "ignored")
	logger.Error(context.Background(), "ignored", errors.New("x"))
	assert.Equal(t, logger, logger.With(Fields{"a": 1}))
}
