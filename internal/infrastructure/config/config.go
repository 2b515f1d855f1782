package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	SessionSecret string `env:"SESSION_SECRET, default=dev-session-secret"`

	Mongo MongoConfig
	Redis RedisConfig
	Blob  BlobConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=wanderlust"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type BlobConfig struct {
	Endpoint  string `env:"BLOB_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"BLOB_ACCESS_KEY, default=wanderlust"`
	SecretKey string `env:"BLOB_SECRET_KEY, default=wanderlust-secret"`
	Bucket    string `env:"BLOB_BUCKET,     default=wanderlust-images"`
	BaseURL   string `env:"BLOB_BASE_URL,   default=http://localhost:9000"`
	UseSSL    bool   `env:"BLOB_USE_SSL,    default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
