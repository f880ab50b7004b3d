package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,          default=8080"`
	Env           string        `env:"ENV,           default=development"`
	JWTSecret     string        `env:"JWT_SECRET,    required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,     default=72h"`
	LogLevel      string        `env:"LOG_LEVEL,     default=info"`
	BasePath      string        `env:"API_BASE_PATH, default=/api/v1"`
	ClientURL     string        `env:"CLIENT_URL,    default=http://localhost:5173"`
	Store         string        `env:"STORE,         default=mongo"`
	NotifyWorkers int           `env:"NOTIFY_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=linkedin_clone"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MailConfig struct {
	SMTPAddr string `env:"SMTP_ADDR"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM, default=noreply@linkedin-clone.local"`
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.Store != "mongo" && cfg.Store != "memory" {
		return nil, fmt.Errorf("STORE must be mongo or memory, got %q", cfg.Store)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}
