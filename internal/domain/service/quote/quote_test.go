package quote_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/service/quote"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
)

type resolverStub struct {
	profile entity.MarkupProfile
	err     error
}

func (r resolverStub) Resolve(context.Context, string) (entity.MarkupProfile, error) {
	return r.profile, r.err
}

type cacheStub struct {
	fetchErr error
	stale    *entity.Ticker
}

func (c cacheStub) GetOrFetch(
	ctx context.Context,
	_ value.PriceSource,
	fetch func(context.Context) (entity.Ticker, error),
) (entity.Ticker, error) {
	if c.fetchErr != nil {
		return entity.Ticker{}, c.fetchErr
	}

	return fetch(ctx)
}

func (c cacheStub) Stale(value.PriceSource) (entity.Ticker, bool) {
	if c.stale == nil {
		return entity.Ticker{}, false
	}

	return *c.stale, true
}

type adapterStub struct {
	ticker entity.Ticker
	err    error
}

func (a adapterStub) FetchTicker(context.Context, value.PriceSource) (entity.Ticker, error) {
	return a.ticker, a.err
}

func testTicker() entity.Ticker {
	return entity.Ticker{
		LastPrice:          decimal.RequireFromString("5.40"),
		DailyChangePercent: decimal.RequireFromString("0.8"),
		Volume:             decimal.RequireFromString("1250000"),
		High24h:            decimal.RequireFromString("5.52"),
		Low24h:             decimal.RequireFromString("5.31"),
		TradeCount:         18345,
		Source:             value.SourceBinance,
		FetchedAt:          time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetQuotePublicCaller(t *testing.T) {
	rq := require.New(t)

	svc := quote.NewService(
		resolverStub{profile: quote.DefaultProfile()},
		cacheStub{},
		adapterStub{ticker: testTicker()},
	)

	q, err := svc.GetQuote(context.Background(), "")
	rq.NoError(err)

	rq.True(decimal.RequireFromString("5.454").Equal(q.EffectivePrice), "got %s", q.EffectivePrice)
	rq.True(q.StandardPrice.Equal(q.EffectivePrice))
	rq.True(q.Savings.IsZero())
	rq.False(q.Stale)
	rq.Equal(value.SourceBinance, q.Source)
}

func TestGetQuotePartnerMarkup(t *testing.T) {
	rq := require.New(t)

	svc := quote.NewService(
		resolverStub{profile: entity.MarkupProfile{
			CallerID:      "partner-1",
			MarkupPercent: decimal.RequireFromString("0.5"),
			IsActive:      true,
			Source:        value.SourceBinance,
		}},
		cacheStub{},
		adapterStub{ticker: testTicker()},
	)

	q, err := svc.GetQuote(context.Background(), "partner-1")
	rq.NoError(err)

	rq.True(decimal.RequireFromString("5.427").Equal(q.EffectivePrice), "got %s", q.EffectivePrice)
	rq.True(decimal.RequireFromString("5.454").Equal(q.StandardPrice), "got %s", q.StandardPrice)
	rq.True(decimal.RequireFromString("0.027").Equal(q.Savings), "got %s", q.Savings)
}

// Договорная наценка выше публичной даёт отрицательную экономию, без клампа.
func TestGetQuoteSavingsMayBeNegative(t *testing.T) {
	rq := require.New(t)

	svc := quote.NewService(
		resolverStub{profile: entity.MarkupProfile{
			CallerID:      "partner-2",
			MarkupPercent: decimal.RequireFromString("2.0"),
			IsActive:      true,
			Source:        value.SourceBinance,
		}},
		cacheStub{},
		adapterStub{ticker: testTicker()},
	)

	q, err := svc.GetQuote(context.Background(), "partner-2")
	rq.NoError(err)

	rq.True(q.Savings.IsNegative(), "got %s", q.Savings)
}

func TestGetQuoteResolverFailureFallsBackToDefault(t *testing.T) {
	rq := require.New(t)

	svc := quote.NewService(
		resolverStub{err: domain.NewError(errcodes.ResolverUnavailable, "partner profile lookup failed")},
		cacheStub{},
		adapterStub{ticker: testTicker()},
	)

	q, err := svc.GetQuote(context.Background(), "partner-1")
	rq.NoError(err)

	rq.True(domain.DefaultMarkupPercent.Equal(q.MarkupPercent))
	rq.True(q.Savings.IsZero())
}

func TestGetQuoteStaleFallback(t *testing.T) {
	rq := require.New(t)

	stale := testTicker()

	svc := quote.NewService(
		resolverStub{profile: quote.DefaultProfile()},
		cacheStub{
			fetchErr: domain.NewError(errcodes.SourceUnavailable, "upstream status 503"),
			stale:    &stale,
		},
		adapterStub{},
	)

	q, err := svc.GetQuote(context.Background(), "")
	rq.NoError(err)

	rq.True(q.Stale)
	rq.True(stale.LastPrice.Equal(q.BasePrice))
	rq.Equal(stale.FetchedAt, q.FetchedAt)
}

func TestGetQuoteNoSnapshotAtAll(t *testing.T) {
	rq := require.New(t)

	svc := quote.NewService(
		resolverStub{profile: quote.DefaultProfile()},
		cacheStub{fetchErr: errors.New("connection refused")},
		adapterStub{},
	)

	_, err := svc.GetQuote(context.Background(), "")
	rq.Error(err)
}
