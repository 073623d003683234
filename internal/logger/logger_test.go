package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_QuietWritesWarningsAsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug().Msg("hidden")
	log.Info().Msg("hidden too")
	assert.Empty(t, buf.String())

	log.Warn().Str("path", "snapshot.json").Msg("schema validation disabled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "snapshot.json", entry["path"])
	assert.Contains(t, entry, "time")
}

func TestNew_VerboseWritesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Debug().Msg("cache miss")
	assert.Contains(t, buf.String(), "cache miss")
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() { log.Error().Msg("dropped") })
}
