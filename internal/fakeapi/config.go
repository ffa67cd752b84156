package fakeapi

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/requestdesk/internal/flagx"
	"github.com/spf13/viper"
)

// Config holds runtime settings for the stub backend.
type Config struct {
	Addr      string
	APIPrefix string
	LogLevel  string
	LogFormat string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":10000"
	c.APIPrefix = "/api"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig applies defaults, then REQDESK_FAKEAPI_* variables, then the
// -addr flag.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	v := viper.New()
	v.SetEnvPrefix("REQDESK_FAKEAPI")
	v.AutomaticEnv()
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("api_prefix", cfg.APIPrefix)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)

	cfg.Addr = v.GetString("addr")
	cfg.APIPrefix = v.GetString("api_prefix")
	cfg.LogLevel = v.GetString("log_level")
	cfg.LogFormat = v.GetString("log_format")

	fs := flag.NewFlagSet("fakeapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"addr"})); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}

// LoadConfigFromOS reads os.Args.
func LoadConfigFromOS() (*Config, error) {
	return LoadConfig(os.Args[1:])
}
