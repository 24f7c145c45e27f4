package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/aretw0/turing/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFile_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithFile(slog.LevelInfo, &buf)

	logger.Debug("hidden")
	logger.Info("machine halted", "steps", 6, "error", "none")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "machine halted", record["msg"])
	assert.Equal(t, float64(6), record["steps"])
	assert.Equal(t, "none", record["err"])
	assert.NotContains(t, buf.String(), "hidden")
}
