package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/New_York"`
		LogLevel string      `env:"LOG_LEVEL" envDefault:"INFO"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Backend struct {
		URL       string        `env:"BACKEND_URL" envDefault:"http://localhost:8000"`
		Token     string        `env:"BACKEND_TOKEN"`
		CheckPath string        `env:"BACKEND_CHECK_PATH" envDefault:"/api/photographer-availability/check"`
		ListPath  string        `env:"BACKEND_LIST_PATH" envDefault:"/api/photographers/%d/availability"`
		Timeout   time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"availability:availability"`
		BasicClients       []ConfigBasicClient
	}

	Resolver struct {
		MaxConcurrency int `env:"RESOLVER_MAX_CONCURRENCY" envDefault:"8"`
		NextTimesLimit int `env:"RESOLVER_NEXT_TIMES_LIMIT" envDefault:"3"`
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"scheduling"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"availability-resolver"`
		Bind     string `env:"RABBITMQ_BIND" envDefault:"*.*.availability.*"`
		BindAll  string `env:"RABBITMQ_BIND_ALL" envDefault:"*.*._all_.*"`
	}

	Cache struct {
		Enabled bool          `env:"CACHE_ENABLED"`
		Size    int           `env:"CACHE_SIZE" envDefault:"1000"`
		TTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	}
}

// NewConfig читает .env (если он есть) и переменные окружения
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.normalize()

	return cfg, nil
}

func (c *Config) normalize() {
	// Приведение окружения к нижнему регистру для унификации
	c.App.Env = Environment(strings.ToLower(string(c.App.Env)))
	c.App.LogLevel = strings.ToUpper(c.App.LogLevel)
	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")

	c.Auth.BasicClients = []ConfigBasicClient{}
	clientPairs := strings.Split(c.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" {
			c.Auth.BasicClients = append(c.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	if c.Resolver.MaxConcurrency < 1 {
		c.Resolver.MaxConcurrency = 1
	}
	if c.Resolver.NextTimesLimit < 0 {
		c.Resolver.NextTimesLimit = 0
	}

	// Кэш инвалидируется только через RabbitMQ, без него кэш не включаем
	if !c.RabbitMQ.Enabled {
		c.Cache.Enabled = false
	}
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}

// Location возвращает таймзону приложения, при ошибке UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
