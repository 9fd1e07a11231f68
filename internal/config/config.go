package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration, loaded from a YAML file with
// environment variable overrides (prefix BANG, dots become underscores).
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Registry RegistryConfig `mapstructure:"registry"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig points at the snapshot store. An empty URL runs the server
// memory-only, with no snapshots surviving a restart.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RegistryConfig controls match retention. MemoryTTL evicts idle matches from
// memory, StorageTTL deletes their snapshots, and PurgeInterval is how often
// both sweeps run.
type RegistryConfig struct {
	MemoryTTL     time.Duration `mapstructure:"memory_ttl"`
	StorageTTL    time.Duration `mapstructure:"storage_ttl"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file path. A missing file is not an
// error; defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":61234")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("registry.memory_ttl", time.Hour)
	v.SetDefault("registry.storage_ttl", 48*time.Hour)
	v.SetDefault("registry.purge_interval", 30*time.Minute)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("BANG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
