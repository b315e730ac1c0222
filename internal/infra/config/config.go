package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint     = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetrySpec    = "@every 10m"
	DefaultErrorLogFile = ".bot-errors.log"
)

// AppConfig holds all configuration for the application.
// It is built once at startup and never mutated afterwards.
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string
	TelegramAPIURL string // Empty means the public Bot API
	Endpoint       string
	RetrySpec      string        // Cron spec for the pause between cycles
	FromDate       int64         // Initial cursor, 0 means "now"
	APITimeout     time.Duration // 0 means the HTTP client's default (no timeout)
	LogLevel       string
	Environment    string
	ErrorLogFile   string
	DatabaseURL    string // Optional, enables the notification journal

	missing []string // Required variables that were not set
}

// MissingVariableError reports required environment variables that are unset or empty.
type MissingVariableError struct {
	Names []string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("required environment variables are not set: %s", strings.Join(e.Names, ", "))
}

// InvalidVariableError reports an environment variable that could not be parsed.
type InvalidVariableError struct {
	Name  string
	Value string
	Err   error
}

func (e *InvalidVariableError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Name, e.Value, e.Err)
}

func (e *InvalidVariableError) Unwrap() error { return e.Err }

// Load reads configuration from environment variables and .env file (if present).
// Missing secrets are not an error here, call Validate once logging is set up.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds the config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (*AppConfig, error) {
	get := func(name string) string {
		v, _ := lookup(name)
		return strings.TrimSpace(v)
	}

	cfg := &AppConfig{}

	cfg.PracticumToken = get("PRACTICUM_TOKEN")
	if cfg.PracticumToken == "" {
		cfg.missing = append(cfg.missing, "PRACTICUM_TOKEN")
	}

	cfg.TelegramToken = get("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		cfg.missing = append(cfg.missing, "TELEGRAM_TOKEN")
	}

	// Numeric chat id or a public channel username such as @my_channel.
	cfg.TelegramChatID = get("TELEGRAM_CHAT_ID")
	if cfg.TelegramChatID == "" {
		cfg.missing = append(cfg.missing, "TELEGRAM_CHAT_ID")
	}

	cfg.TelegramAPIURL = get("TELEGRAM_API_URL")

	cfg.Endpoint = get("PRACTICUM_ENDPOINT")
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	cfg.RetrySpec = get("RETRY_SPEC")
	if cfg.RetrySpec == "" {
		cfg.RetrySpec = DefaultRetrySpec // 600 seconds
	}

	if s := get("FROM_DATE"); s != "" {
		ts, err := strconv.ParseInt(s, 10, 64)
		if err != nil || ts < 0 {
			if err == nil {
				err = fmt.Errorf("must not be negative")
			}
			return nil, &InvalidVariableError{Name: "FROM_DATE", Value: s, Err: err}
		}
		cfg.FromDate = ts
	}

	if s := get("API_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			if err == nil {
				err = fmt.Errorf("must not be negative")
			}
			return nil, &InvalidVariableError{Name: "API_TIMEOUT", Value: s, Err: err}
		}
		cfg.APITimeout = d
	}

	cfg.LogLevel = strings.ToLower(get("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(get("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.ErrorLogFile = get("ERROR_LOG_FILE")
	if cfg.ErrorLogFile == "" {
		cfg.ErrorLogFile = DefaultErrorLogFile
	}

	cfg.DatabaseURL = get("DATABASE_URL")

	return cfg, nil
}

// Validate checks that every required secret is present.
func (c *AppConfig) Validate() error {
	if len(c.missing) > 0 {
		return &MissingVariableError{Names: append([]string(nil), c.missing...)}
	}
	return nil
}
