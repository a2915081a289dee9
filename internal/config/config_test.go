package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults without a file", func(t *testing.T) {
		// When: the file does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults are used
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "tictactoe:events", conf.Redis.Channel)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Values from the file", func(t *testing.T) {
		// Given: a config file enabling the feed
		path := writeConfig(t, `
log-level: debug
socket-port: "8181"
redis:
  enabled: true
  host: cache
  port: "6380"
`)

		// When: it is loaded
		conf, err := Load(path)

		// Then: file values win over defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8181", conf.SocketPort)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file and an env var for the same key
		path := writeConfig(t, "http-port: \"7000\"\n")
		t.Setenv("HTTP_PORT", "7001")
		t.Setenv("REDIS_CHANNEL", "games")

		// When: it is loaded
		conf, err := Load(path)

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, "7001", conf.HTTPPort)
		assert.Equal(t, "games", conf.Redis.Channel)
	})

	t.Run("Broken file", func(t *testing.T) {
		// Given: invalid YAML
		path := writeConfig(t, "redis: [")

		// When/Then: MustLoad panics
		assert.Panics(t, func() { MustLoad(path) })
	})
}
