package marketdata

import (
	"context"
	"net/http"

	"github.com/benbjohnson/clock"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type BinanceClient struct {
	baseURL    string
	symbol     string
	httpClient *http.Client
	clk        clock.Clock
}

func NewBinanceClient(baseURL, symbol string, httpClient *http.Client, clk clock.Clock) *BinanceClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if clk == nil {
		clk = clock.New()
	}

	return &BinanceClient{
		baseURL:    baseURL,
		symbol:     symbol,
		httpClient: httpClient,
		clk:        clk,
	}
}

// binanceTicker — ответ /api/v3/ticker/24hr. Цены приходят строками.
type binanceTicker struct {
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
	Volume             string `json:"volume"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	Count              int64  `json:"count"`
}

func (c *BinanceClient) Ticker24h(ctx context.Context) (entity.Ticker, error) {
	body, err := get(ctx, c.httpClient, c.baseURL+"/api/v3/ticker/24hr?symbol="+c.symbol)
	if err != nil {
		return entity.Ticker{}, err
	}

	var raw binanceTicker
	if err := json.Unmarshal(body, &raw); err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed binance payload")
	}

	lastPrice, err := decimal.NewFromString(raw.LastPrice)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed binance lastPrice")
	}

	changePercent, err := decimal.NewFromString(raw.PriceChangePercent)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed binance priceChangePercent")
	}

	volume, err := decimal.NewFromString(raw.Volume)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed binance volume")
	}

	high, err := decimal.NewFromString(raw.HighPrice)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed binance highPrice")
	}

	low, err := decimal.NewFromString(raw.LowPrice)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed binance lowPrice")
	}

	return entity.Ticker{
		LastPrice:          lastPrice,
		DailyChangePercent: changePercent,
		Volume:             volume,
		High24h:            high,
		Low24h:             low,
		TradeCount:         raw.Count,
		Source:             value.SourceBinance,
		FetchedAt:          c.clk.Now(),
	}, nil
}
