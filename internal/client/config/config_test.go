package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000", c.APIBaseURL)
	assert.True(t, c.UseAPI)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, ".finkeeper", c.DataDir)
	assert.False(t, c.PersistSession)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	chdir(t, t.TempDir())

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(EnvAPIURL, "http://env:1")
	t.Setenv(EnvDataDir, "/env/data")
	t.Setenv(EnvLogLevel, "debug")

	path := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"data_dir":  "/json/data",
		"log_level": "error",
	})

	// флаги перекрывают JSON, JSON перекрывает окружение
	os.Args = []string{"testbin", "-c", path, "-l", "info", "-m"}

	cfg := LoadConfig()

	assert.Equal(t, "http://env:1", cfg.APIBaseURL)
	assert.Equal(t, "/json/data", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.UseAPI)
}
