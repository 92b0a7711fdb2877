// Package config loads the process-wide configuration once at startup.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting the server needs. It is resolved once in
// main and passed down; nothing reads the environment after startup.
type Config struct {
	AppPort int `env:"APP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST,required"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USERNAME,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_DATABASE,required"`

	// RunMigrations toggles AutoMigrate on startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"false"`

	JWTSecret     string        `env:"JWT_SECRET,required"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION_TIME" envDefault:"24h"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	// RedisTTL bounds how long cached presigned URLs stay valid.
	RedisTTL time.Duration `env:"REDIS_TTL" envDefault:"60s"`

	S3Endpoint  string `env:"S3_ENDPOINT,required"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey string `env:"S3_ACCESS_KEY,required"`
	S3SecretKey string `env:"S3_SECRET_KEY,required"`
	S3Bucket    string `env:"S3_BUCKET,required"`
	S3UseSSL    bool   `env:"S3_USE_SSL" envDefault:"true"`

	AuthThrottleTTL   time.Duration `env:"AUTH_THROTTLE_TTL" envDefault:"1m"`
	AuthThrottleLimit int           `env:"AUTH_THROTTLE_LIMIT" envDefault:"10"`
}

// Load parses the configuration from environment variables.
// Missing required keys fail startup instead of surfacing later mid-request.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// RedisAddr returns host:port for the Redis client, or "" when Redis is not
// configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
