package bot

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sglre6355/basebot/internal/reporting"
)

// envFile is loaded into the process environment before the configuration is
// parsed, when present.
const envFile = "env"

// ErrMissingConfiguration is matched by every MissingConfigurationError.
var ErrMissingConfiguration = errors.New("missing configuration")

// MissingConfigurationError names a required environment variable that is
// not set or empty.
type MissingConfigurationError struct {
	Key string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s is not set", e.Key)
}

func (e *MissingConfigurationError) Is(target error) bool {
	return target == ErrMissingConfiguration
}

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	BotToken   string     `env:"BOT_TOKEN,required,notEmpty"`
	LogWebhook string     `env:"LOG_WEBHOOK,required,notEmpty"`
	Prefix     string     `env:"BOT_PREFIX,notEmpty"  envDefault:"!"`
	OwnerIDs   []string   `env:"BOT_OWNER_IDS"        envSeparator:","`
	LogLevel   slog.Level `env:"LOG_LEVEL"            envDefault:"info"`
	LogFormat  string     `env:"LOG_FORMAT"           envDefault:"json"`
}

// LoadConfig loads configuration from environment variables, after loading
// the optional env file.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "file", envFile, "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		if missing := missingKey(err); missing != "" {
			return nil, &MissingConfigurationError{Key: missing}
		}
		return nil, err
	}

	if _, _, err := reporting.ParseWebhookURL(cfg.LogWebhook); err != nil {
		return nil, fmt.Errorf("invalid LOG_WEBHOOK: %w", err)
	}

	if !utf8.ValidString(cfg.Prefix) {
		return nil, fmt.Errorf("invalid BOT_PREFIX %q: not valid UTF-8", cfg.Prefix)
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: expected json or text", cfg.LogFormat)
	}

	return cfg, nil
}

// missingKey returns the first unset or empty variable reported by env.Parse.
func missingKey(err error) string {
	errs := []error{err}
	var agg env.AggregateError
	if errors.As(err, &agg) {
		errs = agg.Errors
	}

	for _, e := range errs {
		var notSet env.VarIsNotSetError
		if errors.As(e, &notSet) {
			return notSet.Key
		}
		var empty env.EmptyVarError
		if errors.As(e, &empty) {
			return empty.Key
		}
	}
	return ""
}
