package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the request desk client.
//
// Fields:
//   - ServerURL: scheme and host of the backend, e.g. http://localhost:10000.
//   - APIPrefix: path prefix of every API call, e.g. /api.
//   - DBPath: SQLite file keeping the identity and profile between runs.
//   - PollInterval: pause between the settlement of one list refresh and the next.
//   - DebounceWindow: quiet time after a filter change before refetching.
//   - RequestTimeout: upper bound for a single HTTP call.
//   - PageSize: rows per page on list screens.
type Config struct {
	ServerURL      string
	APIPrefix      string
	DBPath         string
	PollInterval   time.Duration
	DebounceWindow time.Duration
	RequestTimeout time.Duration
	PageSize       int
	LogLevel       string
	LogFormat      string
}

var ErrInvalidConfig = errors.New("invalid config")

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:10000"
	c.APIPrefix = "/api"
	c.DBPath = "requestdesk.db"
	c.PollInterval = 5 * time.Second
	c.DebounceWindow = 350 * time.Millisecond
	c.RequestTimeout = 15 * time.Second
	c.PageSize = 10
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server_url %q must be an absolute http(s) url", ErrInvalidConfig, c.ServerURL)
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("%w: api_prefix %q must start with /", ErrInvalidConfig, c.APIPrefix)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is empty", ErrInvalidConfig)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidConfig)
	}
	if c.DebounceWindow < 0 {
		return fmt.Errorf("%w: debounce_window must not be negative", ErrInvalidConfig)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig builds a Config from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays values from the
// config file (if any), the .env file and environment, and finally flags.
// Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	v, err := newViper(cfg, args)
	if err != nil {
		return nil, err
	}
	applyViper(v, cfg)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
