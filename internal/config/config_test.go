package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development", Mode: ModeController},
		Logger:    LoggerConfig{Level: "info"},
		Storage:   StorageConfig{DataDir: "/data"},
		Scripture: ScriptureConfig{Source: SourceGetBible, SearchRate: 10},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown environment", func(c *Config) { c.App.Environment = "test" }},
		{"case sensitive environment", func(c *Config) { c.App.Environment = "DEVELOPMENT" }},
		{"unknown log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"unknown source", func(c *Config) { c.Scripture.Source = "bolls" }},
		{"negative search rate", func(c *Config) { c.Scripture.SearchRate = -1 }},
		{"negative timeout", func(c *Config) { c.Scripture.Timeout = -time.Second }},
		{"empty data dir", func(c *Config) { c.Storage.DataDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("REDIS_URL", "")
	t.Setenv("SCRIPTURE_SOURCE", "")

	cfg, err := Load([]string{"-env-file", filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, ModeController, cfg.App.Mode)
	assert.Equal(t, SourceGetBible, cfg.Scripture.Source)
	assert.Equal(t, 2*time.Second, cfg.Sync.ProbeTimeout)
	assert.Equal(t, time.Duration(0), cfg.Scripture.Timeout)
	assert.Equal(t, filepath.Join(dir, "bible.db"), cfg.Storage.DBPath())
	assert.Equal(t, "bible_app", cfg.ChannelName("bible_app"))
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("SYNC_NAMESPACE", "from-env")

	cfg, err := Load([]string{"-display", "-namespace", "church", "-env-file", filepath.Join(dir, "none")})
	require.NoError(t, err)

	assert.Equal(t, ModeDisplay, cfg.App.Mode)
	assert.Equal(t, "bible_app:church", cfg.ChannelName("bible_app"))
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "# comment\nBIBLE_TUI_TEST_KEY=\"abc\"\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Setenv("DATA_DIR", dir)
	t.Cleanup(func() { _ = os.Unsetenv("BIBLE_TUI_TEST_KEY") })

	_, err := Load([]string{"-serve", "-env-file", envFile})
	require.NoError(t, err)

	assert.Equal(t, "abc", os.Getenv("BIBLE_TUI_TEST_KEY"))
}

func TestLoad_DisplayAndServeConflict(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	_, err := Load([]string{"-display", "-serve"})
	assert.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("SYNC_PROBE_TIMEOUT", "soon")
	_, err := Load(nil)
	assert.Error(t, err)
}
