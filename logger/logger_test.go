package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: Setup swaps process wide state.
func TestSetup(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	t.Run("release writes json at info", func(t *testing.T) {
		var buf bytes.Buffer
		setup(&buf, false)

		lobby := Component("lobby")
		lobby.Debug().Msg("hidden")
		lobby.Info().Str("session", "S1").Msg("session added")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "info", line["level"])
		assert.Equal(t, "lobby", line["component"])
		assert.Equal(t, "S1", line["session"])
		assert.Equal(t, "session added", line["message"])
		assert.Contains(t, line, "time")
	})

	t.Run("debug writes console at debug", func(t *testing.T) {
		var buf bytes.Buffer
		setup(&buf, true)

		player := Component("player")
		player.Debug().Msg("frame sent")

		assert.Contains(t, buf.String(), "frame sent")
		assert.Contains(t, buf.String(), "component=")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}
