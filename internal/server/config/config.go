// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line
// flags.
package config

import (
	"strings"
	"time"

	"github.com/Shivamkillarikar/CityGuardian/internal/timex"
)

// DevSecretKey is the signing secret used when nothing else is configured.
// It must never be used outside local development.
const DevSecretKey = "dev-secret-change-me"

// ConfigEnv names the environment variable that may point at a JSON config file.
const ConfigEnv = "CITYGUARDIAN_CONFIG"

// Config holds runtime settings for the CityGuardian API server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenLifetime: how long an issued session token stays valid.
//   - AllowedOrigins: browser origins permitted by CORS.
//   - LogFormat: "json" or "text".
type Config struct {
	EndpointAddrHTTP string
	DatabaseDSN      string
	SecretKey        string
	TokenLifetime    time.Duration
	AllowedOrigins   []string
	LogFormat        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = DevSecretKey
	c.TokenLifetime = 7 * timex.Day
	c.AllowedOrigins = []string{"http://localhost:5173"}
	c.LogFormat = "json"
}

// UsesDevSecret reports whether the signing secret is the built-in default.
func (c *Config) UsesDevSecret() bool {
	return c.SecretKey == DevSecretKey
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
// args are the program arguments without the binary name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
