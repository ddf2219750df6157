package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Shivamkillarikar/CityGuardian/internal/flagx"
	"github.com/Shivamkillarikar/CityGuardian/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations accept
// strings such as "15m" or "7d" as well as integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	TokenLifetime    timex.Duration `json:"token_lifetime"`
	AllowedOrigins   []string       `json:"allowed_origins"`
	LogFormat        string         `json:"log_format"`
}

// parseJson loads the file named by -c/-config (or CITYGUARDIAN_CONFIG) and
// overlays every field it sets. Missing file path means nothing to load.
func parseJson(config *Config, args []string) error {

	jsonConfigFile := flagx.JsonConfigFlags(args, ConfigEnv)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config %s: %w", jsonConfigFile, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", jsonConfigFile, err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenLifetime.Duration != 0 {
		config.TokenLifetime = c.TokenLifetime.Duration
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}

	return nil
}
