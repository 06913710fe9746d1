package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Pricing  Pricing
	Bot      Bot
}

type App struct {
	Name                string `env:"APP_NAME" envDefault:"otc-desk"`
	Version             string `env:"APP_VERSION" envDefault:"dev"`
	ProbeListenAddress  string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	MetricListenAddress string `env:"METRIC_LISTEN_ADDRESS" envDefault:":9090"`
}

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Bot — опс-чат. Пустой токен отключает уведомления, деск работает без них.
type Bot struct {
	Token  string `env:"BOT_TOKEN"`
	ChatID int64  `env:"BOT_CHAT_ID"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
