package config

import "time"

// ConfigEnv names the environment variable that may point at a JSON config file.
const ConfigEnv = "CITYGUARDIAN_CLIENT_CONFIG"

// Config holds runtime settings for the CityGuardian CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, without the /api suffix.
//   - SessionDB: SQLite file where the signed-in session is persisted.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	SessionDB      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.SessionDB = "session.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. args exclude the binary name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
