package config

import (
	"flag"
	"io"
	"strings"

	"github.com/Shivamkillarikar/CityGuardian/internal/flagx"
	"github.com/Shivamkillarikar/CityGuardian/internal/timex"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t duration token lifetime ("7d", "12h")
//	-o string   comma-separated allowed CORS origins
//	-l string   log format: json or text
//
// The function first filters args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with -c/-config.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	lifetime := timex.Duration{Duration: config.TokenLifetime}
	origins := strings.Join(config.AllowedOrigins, ",")

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.Var(&lifetime, "t", "token lifetime")
	fs.StringVar(&origins, "o", origins, "allowed CORS origins, comma-separated")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|text)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenLifetime = lifetime.Duration
	config.AllowedOrigins = splitList(origins)
	return nil
}
