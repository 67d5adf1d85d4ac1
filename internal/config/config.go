package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	LogDir     string `mapstructure:"log_dir"`
	DBPath     string `mapstructure:"db_path"`
	DaemonPort int    `mapstructure:"daemon_port"`
	DebounceMs int    `mapstructure:"debounce_ms"`
	BufferSize int    `mapstructure:"buffer_size"`
}

var Default = Config{
	LogDir:     ".",
	DBPath:     "dirsync.db",
	DaemonPort: 9001,
	DebounceMs: 500,
	BufferSize: 100,
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}

	return LoadFrom(filepath.Join(home, ".dirsync"))
}

// LoadFrom reads config.yaml from configDir, falling back to defaults and
// DIRSYNC_* environment variables. A relative db_path is resolved against
// configDir.
func LoadFrom(configDir string) (*Config, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetDefault("log_dir", Default.LogDir)
	v.SetDefault("db_path", Default.DBPath)
	v.SetDefault("daemon_port", Default.DaemonPort)
	v.SetDefault("debounce_ms", Default.DebounceMs)
	v.SetDefault("buffer_size", Default.BufferSize)

	v.SetEnvPrefix("DIRSYNC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if ok := errors.As(err, &notFound); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(configDir, cfg.DBPath)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.LogDir == "" {
		return fmt.Errorf("log_dir must not be empty")
	}
	if c.DaemonPort <= 0 || c.DaemonPort > 65535 {
		return fmt.Errorf("invalid daemon_port: %d", c.DaemonPort)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("invalid debounce_ms: %d", c.DebounceMs)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("invalid buffer_size: %d", c.BufferSize)
	}

	return nil
}
