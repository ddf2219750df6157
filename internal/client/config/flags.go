package config

import (
	"flag"
	"io"

	"github.com/Shivamkillarikar/CityGuardian/internal/flagx"
	"github.com/Shivamkillarikar/CityGuardian/internal/timex"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string     API base URL
//	-d string     session database path
//	-t duration   request timeout
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	timeout := timex.Duration{Duration: cfg.RequestTimeout}

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "API base URL")
	fs.StringVar(&cfg.SessionDB, "d", cfg.SessionDB, "session database path")
	fs.Var(&timeout, "t", "request timeout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = timeout.Duration
	return nil
}
