package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Layout    LayoutConfig
	Backup    BackupConfig
	Allowlist AllowlistConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=studio_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type LayoutConfig struct {
	// SaveDebounce is the quiet period after the last layout mutation
	// before the debounced write fires.
	SaveDebounce time.Duration `env:"LAYOUT_SAVE_DEBOUNCE, default=5s"`
}

type BackupConfig struct {
	Dir  string `env:"BACKUP_DIR,  default=./backups"`
	Keep int    `env:"BACKUP_KEEP, default=5"`
}

type AllowlistConfig struct {
	Enforce bool `env:"ALLOWLIST_ENFORCE, default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the process runs in a development
// environment (pretty console logs instead of JSON).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
