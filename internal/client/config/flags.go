package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/requestdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server url
//	-p string   api prefix
//	-d string   local database path
//	-i int      poll interval in seconds
//	-l string   log level
//
// The arguments are filtered with flagx.FilterArgs first, so flags meant for
// other components do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"a", "p", "d", "i", "l"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server url")
	fs.StringVar(&cfg.APIPrefix, "p", cfg.APIPrefix, "api prefix")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "poll interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.PollInterval = time.Duration(*pollInterval) * time.Second
		}
	})
	return nil
}
