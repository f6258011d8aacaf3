package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	DatabaseURL    string
	RedisURL       string
	NATSURL        string
	JWTSecret      string
	OwnerAccount   string
	PlatformFee    uint64
	CourseCacheTTL time.Duration
	EventChannel   string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ELEARN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Elearn API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("platform.fee", 5)
	v.SetDefault("course.cache_ttl", "5m")
	v.SetDefault("event.channel", "elearn")

	ttlString := v.GetString("course.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid course cache ttl: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		DatabaseURL:    v.GetString("database.url"),
		RedisURL:       v.GetString("redis.url"),
		NATSURL:        v.GetString("nats.url"),
		JWTSecret:      v.GetString("jwt.secret"),
		OwnerAccount:   v.GetString("owner.account"),
		PlatformFee:    v.GetUint64("platform.fee"),
		CourseCacheTTL: ttl,
		EventChannel:   v.GetString("event.channel"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.OwnerAccount == "" {
		return Config{}, fmt.Errorf("platform owner account must be provided")
	}

	if cfg.PlatformFee > 100 {
		return Config{}, fmt.Errorf("platform fee must be a percentage between 0 and 100")
	}

	return cfg, nil
}
