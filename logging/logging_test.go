package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/cdc-load-producer/config"
	"github.com/AntonStoeckl/cdc-load-producer/logging"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}

		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line), raw)
		lines = append(lines, line)
	}

	return lines
}

func Test_Adapter_WritesKeyValuePairsAsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewAdapter(logging.Configure(config.Log{Level: "debug", JSONStdout: true}, &buf))

	logger.Info("committed: insert_user", "seq", 1, "user_id", int64(42), "username", "alice_1234")
	logger.Error("operation failed", "error", "boom")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "committed: insert_user", lines[0]["message"])
	assert.InDelta(t, 42, lines[0]["user_id"], 0)
	assert.Equal(t, "alice_1234", lines[0]["username"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func Test_Configure_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewAdapter(logging.Configure(config.Log{Level: "warn", JSONStdout: true}, &buf))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func Test_Configure_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := logging.Configure(config.Log{Level: "verbose", JSONStdout: true}, &bytes.Buffer{})

	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func Test_Configure_ConsoleOutputIsNotJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewAdapter(logging.Configure(config.Log{Level: "info"}, &buf))

	logger.Info("producer started", "interval", "3s")

	assert.Contains(t, buf.String(), "producer started")
	assert.Contains(t, buf.String(), "interval=")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func Test_WithRunID_TagsEveryLine(t *testing.T) {
	var buf bytes.Buffer
	l, runID := logging.WithRunID(logging.Configure(config.Log{Level: "info", JSONStdout: true}, &buf))

	l.Info().Msg("one")
	l.Info().Msg("two")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Len(t, runID, 36)
	assert.Equal(t, runID, lines[0]["run_id"])
	assert.Equal(t, runID, lines[1]["run_id"])
}
