package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8090", cfg.Server.Addr)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8090", cfg.Server.Addr)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9000"
storage:
  backend: sqlite
  database_path: /tmp/p.db
llm:
  model: gemini-2.5-pro
  timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout())
	// Untouched sections keep their defaults.
	assert.Equal(t, "data", cfg.Storage.DataDir)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("api key from environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key-123")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "test-key-123", cfg.LLM.APIKey)
	})

	t.Run("addr and data dir", func(t *testing.T) {
		t.Setenv("AVPLANNER_ADDR", "127.0.0.1:7777")
		t.Setenv("AVPLANNER_DATA_DIR", "/var/lib/avplanner")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:7777", cfg.Server.Addr)
		assert.Equal(t, "/var/lib/avplanner", cfg.Storage.DataDir)
	})

	t.Run("env wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: from-file\n"), 0644))
		t.Setenv("GEMINI_API_KEY", "from-env")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.LLM.APIKey)
	})

	t.Run("debug flag", func(t *testing.T) {
		t.Setenv("AVPLANNER_DEBUG", "1")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.True(t, cfg.Logging.Debug)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}

func TestLLMTimeoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Timeout = "not-a-duration"
	assert.Equal(t, time.Minute, cfg.LLMTimeout())

	cfg.LLM.Timeout = "-5s"
	assert.Equal(t, time.Minute, cfg.LLMTimeout())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Backend = "redis"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.Addr = ""
	assert.Error(t, cfg.Validate())
}
