package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Shivamkillarikar/CityGuardian/internal/timex"
)

// parseEnv overlays values from the environment:
//
//	PORT            listen port (or host:port)
//	DATABASE_DSN    PostgreSQL DSN
//	JWT_SECRET      token signing secret
//	JWT_EXPIRES_IN  token lifetime, e.g. "7d" or "12h"
//	ALLOWED_ORIGINS comma-separated CORS origins
//	LOG_FORMAT      json or text
func parseEnv(config *Config) error {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		if strings.Contains(v, ":") {
			config.EndpointAddrHTTP = v
		} else {
			config.EndpointAddrHTTP = ":" + v
		}
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("JWT_EXPIRES_IN"); ok && v != "" {
		d, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
		}
		config.TokenLifetime = d
	}
	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok && v != "" {
		config.AllowedOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok && v != "" {
		config.LogFormat = v
	}
	return nil
}
