// Package config loads bible-tui configuration from flags, environment
// variables and an optional .env file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Mode selects which view the binary runs.
type Mode string

const (
	ModeController Mode = "controller"
	ModeDisplay    Mode = "display"
	ModeServe      Mode = "serve"
)

// Scripture sources.
const (
	SourceGetBible = "getbible"
	SourceAPIBible = "apibible"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Storage   StorageConfig
	Sync      SyncConfig
	Scripture ScriptureConfig
	Server    ServerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
	Mode        Mode
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig locates the per-profile data directory.
type StorageConfig struct {
	DataDir string
}

// DBPath is the key-value store shared by every process of the profile.
func (s StorageConfig) DBPath() string {
	return filepath.Join(s.DataDir, "bible.db")
}

// SyncConfig configures the synchronization channel.
type SyncConfig struct {
	RedisURL     string        // empty disables the redis backend
	Namespace    string        // appended to the channel name
	ProbeTimeout time.Duration // how long the redis PING may take
}

// ScriptureConfig configures the scripture source.
type ScriptureConfig struct {
	Source      string
	GetBibleURL string
	APIKey      string
	APIURL      string
	Timeout     time.Duration // 0 means no timeout
	SearchRate  float64       // uncached chapter fetches per second during search
}

// ServerConfig holds the HTTP relay configuration.
type ServerConfig struct {
	Addr string
}

// Load reads configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("bible-tui", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataDir := fs.String("data-dir", "", "Directory for preferences and logs")
	redisURL := fs.String("redis-url", "", "Redis URL for cross-process sync")
	namespace := fs.String("namespace", "", "Sync channel namespace")
	source := fs.String("source", "", "Scripture source (getbible, apibible)")
	addr := fs.String("addr", "", "HTTP relay listen address (default: :8080)")
	envFile := fs.String("env-file", ".env", "Path to .env file")
	display := fs.Bool("display", false, "Run as a passive display surface")
	serve := fs.Bool("serve", false, "Run the HTTP relay")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A missing .env file is fine.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
			Mode:        ModeController,
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataDir: getConfigValue(*dataDir, "DATA_DIR", ""),
		},
		Sync: SyncConfig{
			RedisURL:  getConfigValue(*redisURL, "REDIS_URL", ""),
			Namespace: getConfigValue(*namespace, "SYNC_NAMESPACE", ""),
		},
		Scripture: ScriptureConfig{
			Source:      getConfigValue(*source, "SCRIPTURE_SOURCE", SourceGetBible),
			GetBibleURL: getConfigValue("", "GETBIBLE_URL", "https://api.getbible.net/v2"),
			APIKey:      getConfigValue("", "BIBLE_API_KEY", ""),
			APIURL:      getConfigValue("", "BIBLE_API_URL", "https://rest.api.bible/v1"),
		},
		Server: ServerConfig{
			Addr: getConfigValue(*addr, "HTTP_ADDR", ":8080"),
		},
	}

	switch {
	case *display && *serve:
		return nil, errors.New("-display and -serve are mutually exclusive")
	case *display:
		cfg.App.Mode = ModeDisplay
	case *serve:
		cfg.App.Mode = ModeServe
	}

	var err error
	if cfg.Sync.ProbeTimeout, err = getDurationConfigValue("SYNC_PROBE_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.Scripture.Timeout, err = getDurationConfigValue("HTTP_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.Scripture.SearchRate, err = getFloatConfigValue("SEARCH_RATE", 10); err != nil {
		return nil, err
	}

	if err := cfg.expandDataDir(); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Scripture.Source != SourceGetBible && c.Scripture.Source != SourceAPIBible {
		return fmt.Errorf("invalid scripture source: %s (must be %s or %s)", c.Scripture.Source, SourceGetBible, SourceAPIBible)
	}

	if c.Scripture.SearchRate < 0 {
		return errors.New("SEARCH_RATE must not be negative")
	}
	if c.Scripture.Timeout < 0 {
		return errors.New("HTTP_TIMEOUT must not be negative")
	}

	if c.Storage.DataDir == "" {
		return errors.New("data dir cannot be empty after expansion")
	}

	// A missing BIBLE_API_KEY is reported by the source on first use.
	return nil
}

// ChannelName is the broadcast channel, namespaced when configured.
func (c *Config) ChannelName(base string) string {
	if c.Sync.Namespace == "" {
		return base
	}
	return base + ":" + c.Sync.Namespace
}

func (c *Config) expandDataDir() error {
	path := c.Storage.DataDir
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to get config directory: %w", err)
		}
		c.Storage.DataDir = filepath.Join(configDir, "bible-tui")
		return nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	c.Storage.DataDir = filepath.Clean(abs)
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

func getDurationConfigValue(envKey string, defaultValue time.Duration) (time.Duration, error) {
	s := getConfigValue("", envKey, "")
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, s, err)
	}
	return d, nil
}

func getFloatConfigValue(envKey string, defaultValue float64) (float64, error) {
	s := getConfigValue("", envKey, "")
	if s == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, s, err)
	}
	return f, nil
}

// loadEnvFile loads KEY=value lines into the environment without overriding
// variables that are already set.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- path comes from the user
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
