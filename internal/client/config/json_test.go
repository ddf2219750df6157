package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_url":      "http://flag.example:9000",
		"request_timeout": "15s",
	})
	pathEnv := writeTempJSON(t, dir, "env.json", map[string]any{
		"session_db": "env.db",
	})

	t.Run("loads from flags, keeps unset fields", func(t *testing.T) {
		t.Setenv(ConfigEnv, "")

		cfg := &Config{SessionDB: "default.db"}
		require.NoError(t, parseJson(cfg, []string{"-config", pathFlag}))

		assert.Equal(t, "http://flag.example:9000", cfg.ServerURL)
		assert.Equal(t, "default.db", cfg.SessionDB)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	})

	t.Run("falls back to env", func(t *testing.T) {
		t.Setenv(ConfigEnv, pathEnv)

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, nil))

		assert.Equal(t, "env.db", cfg.SessionDB)
	})

	t.Run("no file, no changes", func(t *testing.T) {
		t.Setenv(ConfigEnv, "")

		cfg := &Config{ServerURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJson(cfg, nil))

		assert.Equal(t, "http://defaults:1234", cfg.ServerURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Setenv(ConfigEnv, "")
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJson(&Config{}, []string{"-config", bad}))
	})
}
