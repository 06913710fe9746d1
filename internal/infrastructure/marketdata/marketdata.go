package marketdata

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
)

// Adapter маршрутизирует запрос снимка к выбранному апстриму. Ретраев на
// этом уровне нет — деградация на протухший кэш это ответственность
// сервиса котировок.
type Adapter struct {
	binance *BinanceClient
	okx     *OKXClient
}

func NewAdapter(binance *BinanceClient, okx *OKXClient) *Adapter {
	return &Adapter{
		binance: binance,
		okx:     okx,
	}
}

func (a *Adapter) FetchTicker(ctx context.Context, source value.PriceSource) (entity.Ticker, error) {
	switch source {
	case value.SourceBinance:
		return a.binance.Ticker24h(ctx)
	case value.SourceOKX:
		return a.okx.Ticker(ctx)
	default:
		return entity.Ticker{}, domain.NewError(errcodes.UnknownPriceSource, "unknown price source: "+source.String())
	}
}

// get выполняет GET и возвращает тело только при 2xx. Любой другой исход —
// SourceUnavailable: частичный или нулевой снимок молча не отдаём.
func get(ctx context.Context, httpClient *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceUnavailable, "build request")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceUnavailable, "upstream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.NewError(errcodes.SourceUnavailable, fmt.Sprintf("upstream status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SourceUnavailable, "read upstream response")
	}

	return body, nil
}
