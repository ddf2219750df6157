package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_DSN", "JWT_SECRET", "JWT_EXPIRES_IN", "ALLOWED_ORIGINS", "LOG_FORMAT", ConfigEnv} {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, DevSecretKey, c.SecretKey)
	assert.True(t, c.UsesDevSecret())
	assert.Equal(t, 7*24*time.Hour, c.TokenLifetime)
	assert.Equal(t, []string{"http://localhost:5173"}, c.AllowedOrigins)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsWithoutSources(t *testing.T) {
	clearEnv(t)

	c, err := LoadConfig(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)

	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_http": ":7000",
		"secret_key":         "from-json",
		"token_lifetime":     "2d",
		"log_format":         "text",
	})

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "8080")

	c, err := LoadConfig([]string{"-c", path, "-a", ":9090"})
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.EndpointAddrHTTP, "flag beats env and json")
	assert.Equal(t, "from-env", c.SecretKey, "env beats json")
	assert.Equal(t, 48*time.Hour, c.TokenLifetime, "json beats defaults")
	assert.Equal(t, "text", c.LogFormat)
	assert.False(t, c.UsesDevSecret())
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "forever")
		_, err := LoadConfig(nil)
		assert.Error(t, err)
	})

	t.Run("missing json file", func(t *testing.T) {
		_, err := LoadConfig([]string{"-c", "/does/not/exist.json"})
		assert.Error(t, err)
	})

	t.Run("bad flag value", func(t *testing.T) {
		_, err := LoadConfig([]string{"-t", "soon"})
		assert.Error(t, err)
	})
}
