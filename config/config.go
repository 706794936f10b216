package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port   int    `mapstructure:"PORT"`
	AppEnv string `mapstructure:"APP_ENV"` // development | production

	// Database
	DBDriver    string `mapstructure:"DB_DRIVER"` // mysql | postgres | sqlite
	DatabaseDSN string `mapstructure:"DATABASE_DSN"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`

	// HTTP
	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	CORSOrigins           string `mapstructure:"CORS_ORIGINS"`
	LoginRateLimit        int    `mapstructure:"LOGIN_RATE_LIMIT"` // attempts per minute per IP

	// Seeded admin account
	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already carry everything
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 3000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/employee_portal?charset=utf8mb4&parseTime=True&loc=UTC")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 5)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOGIN_RATE_LIMIT", 5)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWTExpirationHours) * time.Hour
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
