package pricecache

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	gocache "github.com/patrickmn/go-cache"

	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/value"
)

// DefaultTTL — окно свежести снимка апстрима.
const DefaultTTL = 5 * time.Second

// TickerCache — процессный кэш сырых снимков по источнику, общий для всех
// конкурентных клиентов: его смысл — амортизация запросов к апстриму.
// Свежесть считается по инжектированным часам, а записи в go-cache живут
// без собственного срока — протухший снимок остаётся доступен как
// last-known-good для деградированного режима.
//
// Кэш не сериализует конкурентные промахи: два промаха по одному источнику
// могут сходить к апстриму оба. Записи — идемпотентная замена снимка,
// поэтому это безобидная гонка, а не нарушение корректности.
type TickerCache struct {
	entries *gocache.Cache
	ttl     time.Duration
	clk     clock.Clock
}

func New(ttl time.Duration, clk clock.Clock) *TickerCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if clk == nil {
		clk = clock.New()
	}

	return &TickerCache{
		entries: gocache.New(gocache.NoExpiration, 0),
		ttl:     ttl,
		clk:     clk,
	}
}

// GetOrFetch возвращает свежий снимок источника или получает новый через
// fetch. Ошибка fetch не затирает последний удачный снимок.
func (c *TickerCache) GetOrFetch(
	ctx context.Context,
	source value.PriceSource,
	fetch func(context.Context) (entity.Ticker, error),
) (entity.Ticker, error) {
	if ticker, ok := c.fresh(source); ok {
		return ticker, nil
	}

	ticker, err := fetch(ctx)
	if err != nil {
		return entity.Ticker{}, err
	}

	c.entries.Set(source.String(), ticker, gocache.NoExpiration)

	return ticker, nil
}

// Stale возвращает последний удачный снимок любой давности.
func (c *TickerCache) Stale(source value.PriceSource) (entity.Ticker, bool) {
	raw, ok := c.entries.Get(source.String())
	if !ok {
		return entity.Ticker{}, false
	}

	return raw.(entity.Ticker), true //nolint:forcetypeassert
}

func (c *TickerCache) fresh(source value.PriceSource) (entity.Ticker, bool) {
	ticker, ok := c.Stale(source)
	if !ok {
		return entity.Ticker{}, false
	}

	if c.clk.Now().Sub(ticker.FetchedAt) >= c.ttl {
		return entity.Ticker{}, false
	}

	return ticker, true
}
