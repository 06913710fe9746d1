package marketdata

import (
	"context"
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
)

type OKXClient struct {
	baseURL    string
	instID     string
	httpClient *http.Client
	clk        clock.Clock
}

func NewOKXClient(baseURL, instID string, httpClient *http.Client, clk clock.Clock) *OKXClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if clk == nil {
		clk = clock.New()
	}

	return &OKXClient{
		baseURL:    baseURL,
		instID:     instID,
		httpClient: httpClient,
		clk:        clk,
	}
}

type okxTickerResponse struct {
	Code string      `json:"code"`
	Msg  string      `json:"msg"`
	Data []okxTicker `json:"data"`
}

type okxTicker struct {
	Last    string `json:"last"`
	Open24h string `json:"open24h"`
	High24h string `json:"high24h"`
	Low24h  string `json:"low24h"`
	Vol24h  string `json:"vol24h"`
}

func (c *OKXClient) Ticker(ctx context.Context) (entity.Ticker, error) {
	body, err := get(ctx, c.httpClient, c.baseURL+"/api/v5/market/ticker?instId="+c.instID)
	if err != nil {
		return entity.Ticker{}, err
	}

	var raw okxTickerResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed okx payload")
	}

	if raw.Code != "0" || len(raw.Data) == 0 {
		return entity.Ticker{}, domain.NewError(errcodes.SourceUnavailable, "okx error response: "+raw.Msg)
	}

	ticker := raw.Data[0]

	last, err := decimal.NewFromString(ticker.Last)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed okx last")
	}

	open, err := decimal.NewFromString(ticker.Open24h)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed okx open24h")
	}

	high, err := decimal.NewFromString(ticker.High24h)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed okx high24h")
	}

	low, err := decimal.NewFromString(ticker.Low24h)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed okx low24h")
	}

	volume, err := decimal.NewFromString(ticker.Vol24h)
	if err != nil {
		return entity.Ticker{}, domain.WrapError(err, errcodes.SourceUnavailable, "malformed okx vol24h")
	}

	return entity.Ticker{
		LastPrice:          last,
		DailyChangePercent: dailyChangePercent(last, open),
		Volume:             volume,
		High24h:            high,
		Low24h:             low,
		TradeCount:         0, // OKX не отдаёт число сделок в тикере
		Source:             value.SourceOKX,
		FetchedAt:          c.clk.Now(),
	}, nil
}

// dailyChangePercent — OKX отдаёт цену открытия вместо готового процента.
func dailyChangePercent(last, open decimal.Decimal) decimal.Decimal {
	if open.IsZero() {
		return decimal.Zero
	}

	return last.Sub(open).Div(open).Mul(decimal.NewFromInt(100)).Round(2) //nolint:mnd
}
