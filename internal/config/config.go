package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string        `env:"APP_ENV" envDefault:"dev"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8081"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"tutordesk"`
	JWTSigningKey   string        `env:"JWT_SIGNING_KEY" envDefault:"dev-signing-secret-change"`
	AccessTTL       time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	RefreshTTL      time.Duration `env:"REFRESH_TTL" envDefault:"24h"`
	QueueBackend    string        `env:"QUEUE_BACKEND" envDefault:"memory"`
	QueueKey        string        `env:"QUEUE_KEY" envDefault:"tutordesk:notifications"`
	RateLimitPerMin int           `env:"RATE_LIMIT_PER_MIN" envDefault:"120"`
	LoginDelay      time.Duration `env:"LOGIN_DELAY" envDefault:"1s"`
	SeedSource      string        `env:"SEED_SOURCE" envDefault:"builtin"`
	SeedFile        string        `env:"SEED_FILE"`
	DashboardLimit  int           `env:"DASHBOARD_LIMIT" envDefault:"3"`
	FeedSize        int           `env:"FEED_SIZE" envDefault:"50"`
}

// Production reports whether the app runs with production settings.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Load returns application config populated from environment variables with sensible defaults.
func Load() (App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return App{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return App{}, err
	}
	return cfg, nil
}

func (a App) validate() error {
	switch a.QueueBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("QUEUE_BACKEND: unknown backend %q", a.QueueBackend)
	}
	switch a.SeedSource {
	case "builtin":
	case "file":
		if a.SeedFile == "" {
			return fmt.Errorf("SEED_FILE required when SEED_SOURCE=file")
		}
	case "postgres":
		if a.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL required when SEED_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("SEED_SOURCE: unknown source %q", a.SeedSource)
	}
	if a.LoginDelay < 0 {
		return fmt.Errorf("LOGIN_DELAY must not be negative")
	}
	return nil
}
