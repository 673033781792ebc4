package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "file", c.WordsStore)
	assert.Equal(t, 10*time.Second, c.FeedbackTimeout)
	assert.Equal(t, 5, c.SessionAttempts)
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Empty(t, c.GameServerURL)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("WORDS_STORE", "sqlite")
	t.Setenv("FEEDBACK_TIMEOUT", "250ms")
	t.Setenv("SESSION_ATTEMPTS", "2")
	t.Setenv("SOLVER_SEED", "42")
	t.Setenv("EXPORT_FILE", "docs/final_table.md")

	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.WordsStore)
	assert.Equal(t, 250*time.Millisecond, c.FeedbackTimeout)
	assert.Equal(t, 2, c.SessionAttempts)
	assert.Equal(t, uint64(42), c.SolverSeed)
	assert.Equal(t, "docs/final_table.md", c.ExportFile)
}

func TestParse_Invalid(t *testing.T) {
	for key, val := range map[string]string{
		"WORDS_STORE":       "redis",
		"LOG_FORMAT":        "xml",
		"SESSION_ATTEMPTS":  "0",
		"PARALLEL_SESSIONS": "-1",
		"FEEDBACK_TIMEOUT":  "soon",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Config{LogLevel: "warn", LogFormat: "json"}.SetupLogging(&buf)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	buf.Reset()
	Config{LogLevel: "debug", LogFormat: "console"}.SetupLogging(&buf)
	log.Debug().Str("word", "crane").Msg("guess")
	assert.Contains(t, buf.String(), "guess")
	assert.Contains(t, buf.String(), "crane")
}
