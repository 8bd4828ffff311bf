package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	RestaurantServiceURL string `envconfig:"RESTAURANT_SERVICE_URL" default:"http://localhost:8001/api"`
	MenuServiceURL       string `envconfig:"MENU_SERVICE_URL" default:"http://localhost:8002/api"`
	UserServiceURL       string `envconfig:"USER_SERVICE_URL" default:"http://localhost:8003/api"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
