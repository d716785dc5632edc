package models

import (
	"errors"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Configuration
//
// Settings are read from INVDASH_* environment variables. An optional .env
// file is loaded first so local development does not need exported vars;
// real environment variables always win over the file.
// ============================================================================

// EnvPrefix is the envconfig prefix for every setting.
const EnvPrefix = "INVDASH"

// Config holds the runtime settings shared by the web and terminal dashboards.
type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:5000/api"`
	ListenAddr     string        `envconfig:"LISTEN_ADDR" default:":8000"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"300ms"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	Verbose        bool          `envconfig:"VERBOSE" default:"false"`
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// LoadConfig loads envFile (when present) and then the environment.
// A missing env file is not an error; a malformed one is.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, serr.Wrap(err, "failed to load env file "+envFile)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, serr.Wrap(err, "failed to read "+EnvPrefix+" environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on settings that would only surface later as
// confusing request errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return serr.Wrap(err, "INVDASH_API_BASE_URL is not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return serr.New("INVDASH_API_BASE_URL must use http or https")
	}
	if u.Host == "" {
		return serr.New("INVDASH_API_BASE_URL must include a host")
	}
	if c.ListenAddr == "" {
		return serr.New("INVDASH_LISTEN_ADDR is required")
	}
	if c.RequestTimeout <= 0 {
		return serr.New("INVDASH_REQUEST_TIMEOUT must be positive")
	}
	if c.SearchDebounce < 0 {
		return serr.New("INVDASH_SEARCH_DEBOUNCE must not be negative")
	}
	if c.SessionTTL < time.Minute {
		return serr.New("INVDASH_SESSION_TTL must be at least 1m")
	}
	if !validLogLevels[c.LogLevel] {
		return serr.New("INVDASH_LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}
