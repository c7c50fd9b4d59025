package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Defaults fill what the file omits", func(t *testing.T) {
		// Given: a config with only the store set
		path := writeConfig(t, "session:\n  store: redis\n")

		// When: loading it
		conf := MustLoad(path)

		// Then: negotiation windows have their defaults
		assert.Equal(t, StoreRedis, conf.Session.Store)
		assert.Equal(t, 10*time.Second, conf.Negotiation.DrawAnswerTimeout)
		assert.Equal(t, time.Duration(0), conf.Negotiation.RematchAnswerTimeout)
		assert.Equal(t, 5*time.Second, conf.Negotiation.DeclineDisplay)
		assert.Equal(t, 100, conf.Session.ChatHistory)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Unknown store panics", func(t *testing.T) {
		path := writeConfig(t, "session:\n  store: disk\n")

		assert.Panics(t, func() { MustLoad(path) })
	})

	t.Run("Missing file panics", func(t *testing.T) {
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
	})
}
