// Package config loads runtime configuration for the CityGuardian terminal
// client.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with -c/-config, or named by
//     CITYGUARDIAN_CLIENT_CONFIG.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string     base URL of the CityGuardian API
//	-d string     path of the local session database (SQLite)
//	-t duration   per-request timeout ("10s", "1m")
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "session_db": "session.db",
//	  "request_timeout": "10s"
//	}
package config
