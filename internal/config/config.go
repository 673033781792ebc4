// internal/config/config.go
//
// Environment configuration for every command.
// Responsibilities:
//   - Load a .env file when present (values already in the environment win).
//   - Parse the typed Config from environment variables with defaults.
//   - Configure the global zerolog logger from LOG_LEVEL / LOG_FORMAT.

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is the process configuration.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json | console

	Port         string `env:"PORT"          envDefault:"5175"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	DictionaryFile string `env:"WORDS_DICTIONARY_FILE" envDefault:"data/words.json"`
	WordsStore     string `env:"WORDS_STORE"           envDefault:"file"` // file | sqlite
	DatabasePath   string `env:"DATABASE_PATH"         envDefault:"data/solver.db"`

	FeedbackTimeout  time.Duration `env:"FEEDBACK_TIMEOUT"  envDefault:"10s"`
	SessionAttempts  int           `env:"SESSION_ATTEMPTS"  envDefault:"5"`
	ParallelSessions int           `env:"PARALLEL_SESSIONS" envDefault:"4"`
	SolverSeed       uint64        `env:"SOLVER_SEED"`

	DailySalt      string `env:"DAILY_SALT"       envDefault:"local_dev_salt"`
	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`

	GameServerURL string `env:"GAME_SERVER_URL"`
	ExportFile    string `env:"EXPORT_FILE"`
}

// Load reads .env (if any) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the environment without touching .env.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the commands cannot work with.
func (c Config) Validate() error {
	switch c.WordsStore {
	case "file", "sqlite":
	default:
		return fmt.Errorf("WORDS_STORE must be file or sqlite, got %q", c.WordsStore)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	if c.SessionAttempts < 1 {
		return fmt.Errorf("SESSION_ATTEMPTS must be at least 1, got %d", c.SessionAttempts)
	}
	if c.ParallelSessions < 1 {
		return fmt.Errorf("PARALLEL_SESSIONS must be at least 1, got %d", c.ParallelSessions)
	}
	if c.FeedbackTimeout <= 0 {
		return fmt.Errorf("FEEDBACK_TIMEOUT must be positive, got %s", c.FeedbackTimeout)
	}
	return nil
}

// SetupLogging sets the global zerolog level and writer. Console output goes to w.
func (c Config) SetupLogging(w io.Writer) {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", c.LogLevel).Msg("unknown LOG_LEVEL, keeping default")
	}
	if w == nil {
		w = os.Stderr
	}
	if c.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
}
