package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/requestdesk/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. REQDESK_SERVER_URL.
const EnvPrefix = "REQDESK"

// DotEnvFile is loaded from the working directory when present. Variables
// already set in the environment win over the file.
const DotEnvFile = ".env"

const (
	keyServerURL      = "server_url"
	keyAPIPrefix      = "api_prefix"
	keyDBPath         = "db_path"
	keyPollInterval   = "poll_interval"
	keyDebounceWindow = "debounce_window"
	keyRequestTimeout = "request_timeout"
	keyPageSize       = "page_size"
	keyLogLevel       = "log_level"
	keyLogFormat      = "log_format"
)

var keys = []string{
	keyServerURL, keyAPIPrefix, keyDBPath, keyPollInterval, keyDebounceWindow,
	keyRequestTimeout, keyPageSize, keyLogLevel, keyLogFormat,
}

// newViper prepares a viper instance with defaults taken from cfg, the file
// named by -c/-config and the environment.
func newViper(cfg *Config, args []string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(keyServerURL, cfg.ServerURL)
	v.SetDefault(keyAPIPrefix, cfg.APIPrefix)
	v.SetDefault(keyDBPath, cfg.DBPath)
	v.SetDefault(keyPollInterval, cfg.PollInterval)
	v.SetDefault(keyDebounceWindow, cfg.DebounceWindow)
	v.SetDefault(keyRequestTimeout, cfg.RequestTimeout)
	v.SetDefault(keyPageSize, cfg.PageSize)
	v.SetDefault(keyLogLevel, cfg.LogLevel)
	v.SetDefault(keyLogFormat, cfg.LogFormat)

	if path := flagx.ConfigPath(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}
	return v, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// applyViper copies resolved values into cfg. Durations accept strings such
// as "5s"; bare numbers are nanoseconds.
func applyViper(v *viper.Viper, cfg *Config) {
	cfg.ServerURL = strings.TrimSpace(v.GetString(keyServerURL))
	cfg.APIPrefix = strings.TrimSpace(v.GetString(keyAPIPrefix))
	cfg.DBPath = v.GetString(keyDBPath)
	cfg.PollInterval = v.GetDuration(keyPollInterval)
	cfg.DebounceWindow = v.GetDuration(keyDebounceWindow)
	cfg.RequestTimeout = v.GetDuration(keyRequestTimeout)
	cfg.PageSize = v.GetInt(keyPageSize)
	cfg.LogLevel = strings.ToLower(v.GetString(keyLogLevel))
	cfg.LogFormat = strings.ToLower(v.GetString(keyLogFormat))
}
