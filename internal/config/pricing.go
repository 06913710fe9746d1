package config

import "time"

type Pricing struct {
	// Торгуемая пара у каждого апстрима названа по-своему.
	BinanceSymbol string `env:"BINANCE_SYMBOL" envDefault:"USDTRUB"`
	OKXInstrument string `env:"OKX_INSTRUMENT" envDefault:"USDT-RUB"`

	BinanceBaseURL string `env:"BINANCE_BASE_URL" envDefault:"https://api.binance.com"`
	OKXBaseURL     string `env:"OKX_BASE_URL" envDefault:"https://www.okx.com"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5s"`
	CacheTTL        time.Duration `env:"PRICE_CACHE_TTL" envDefault:"5s"`
	PollInterval    time.Duration `env:"QUOTE_POLL_INTERVAL" envDefault:"5s"`

	// Порог суточного движения для алерта в опс-чат, в процентах.
	AlertThresholdPercent string `env:"PRICE_ALERT_THRESHOLD" envDefault:"5"`
}
