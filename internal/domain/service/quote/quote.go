package quote

import (
	"context"
	"fmt"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/contextx"
	"otc_desk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type MarketDataAdapter interface {
	FetchTicker(ctx context.Context, source value.PriceSource) (entity.Ticker, error)
}

// TickerCache — процессный кэш сырых снимков по источнику. Свежий снимок
// отдаётся как есть, протухший пересчитывается; Stale возвращает последний
// удачный снимок любой давности для деградированного режима.
type TickerCache interface {
	GetOrFetch(ctx context.Context, source value.PriceSource, fetch func(context.Context) (entity.Ticker, error)) (entity.Ticker, error)
	Stale(source value.PriceSource) (entity.Ticker, bool)
}

type Resolver interface {
	Resolve(ctx context.Context, callerID string) (entity.MarkupProfile, error)
}

// Service собирает котировку: профиль наценки + кэшированный снимок
// апстрима + производные цены.
type Service struct {
	resolver   Resolver
	cache      TickerCache
	marketData MarketDataAdapter
}

func NewService(
	resolver Resolver,
	cache TickerCache,
	marketData MarketDataAdapter,
) *Service {
	return &Service{
		resolver:   resolver,
		cache:      cache,
		marketData: marketData,
	}
}

func (s *Service) GetQuote(ctx context.Context, callerID string) (entity.Quote, error) {
	profile, err := s.resolver.Resolve(ctx, callerID)
	if err != nil {
		// Недоступность партнёрской скидки не должна ломать прайсинг —
		// откатываемся на публичный профиль.
		logger(ctx).Warn("markup resolver unavailable, using default profile", logx.Error(err))

		profile = DefaultProfile()
	}

	ticker, stale, err := s.ticker(ctx, profile.Source)
	if err != nil {
		return entity.Quote{}, err
	}

	return buildQuote(ticker, profile, stale), nil
}

func (s *Service) ticker(ctx context.Context, source value.PriceSource) (entity.Ticker, bool, error) {
	ticker, err := s.cache.GetOrFetch(ctx, source, func(ctx context.Context) (entity.Ticker, error) {
		return s.marketData.FetchTicker(ctx, source)
	})
	if err == nil {
		return ticker, false, nil
	}

	// Протухший-но-живой лучше, чем недоступный: это витринная цена,
	// денежное обязательство фиксируется только локом.
	last, ok := s.cache.Stale(source)
	if !ok {
		return entity.Ticker{}, false, fmt.Errorf("fetch ticker: %w", err)
	}

	logger(ctx).Warn("price source unavailable, serving stale snapshot",
		"source", source.String(),
		"fetched_at", last.FetchedAt,
		logx.Error(err),
	)

	return last, true, nil
}

func buildQuote(ticker entity.Ticker, profile entity.MarkupProfile, stale bool) entity.Quote {
	effective := ComputeEffectivePrice(ticker.LastPrice, profile.MarkupPercent)
	standard := ComputeEffectivePrice(ticker.LastPrice, domain.DefaultMarkupPercent)

	return entity.Quote{
		BasePrice:          ticker.LastPrice,
		MarkupPercent:      profile.MarkupPercent,
		EffectivePrice:     effective,
		StandardPrice:      standard,
		Savings:            standard.Sub(effective),
		DailyChangePercent: ticker.DailyChangePercent,
		Volume:             ticker.Volume,
		High24h:            ticker.High24h,
		Low24h:             ticker.Low24h,
		TradeCount:         ticker.TradeCount,
		Source:             ticker.Source,
		FetchedAt:          ticker.FetchedAt,
		Stale:              stale,
	}
}
