package worker_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/value"
	"otc_desk/internal/worker"
)

type quoteServiceFake struct {
	mu     sync.Mutex
	change decimal.Decimal
	polls  atomic.Int64
}

func (f *quoteServiceFake) setChange(percent string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.change = decimal.RequireFromString(percent)
}

func (f *quoteServiceFake) GetQuote(context.Context, string) (entity.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.polls.Add(1)

	return entity.Quote{
		BasePrice:          decimal.RequireFromString("5.40"),
		EffectivePrice:     decimal.RequireFromString("5.454"),
		StandardPrice:      decimal.RequireFromString("5.454"),
		DailyChangePercent: f.change,
		Source:             value.SourceBinance,
		FetchedAt:          time.Now(),
	}, nil
}

type notifierFake struct {
	alerts atomic.Int64
}

func (n *notifierFake) SendPriceAlert(context.Context, entity.Quote) error {
	n.alerts.Add(1)
	return nil
}

func TestQuotePollerStartStop(t *testing.T) {
	rq := require.New(t)

	svc := &quoteServiceFake{}
	clk := clock.NewMock()

	poller := worker.NewQuotePoller(svc, time.Second, clk)

	rq.NoError(poller.Start(context.Background()))
	rq.Error(poller.Start(context.Background()), "second start must fail")

	// Первый опрос уходит сразу, без ожидания тика.
	rq.Eventually(func() bool {
		return svc.polls.Load() >= 1
	}, time.Second, 10*time.Millisecond)

	rq.True(poller.IsRunning())

	poller.Stop()
	rq.False(poller.IsRunning())

	poller.Stop() // идемпотентно

	rq.NoError(poller.Start(context.Background()))
	poller.Stop()
}

func TestQuotePollerPollsOnTick(t *testing.T) {
	rq := require.New(t)

	svc := &quoteServiceFake{}
	clk := clock.NewMock()

	poller := worker.NewQuotePoller(svc, time.Second, clk)

	rq.NoError(poller.Start(context.Background()))
	defer poller.Stop()

	rq.Eventually(func() bool {
		return svc.polls.Load() >= 1
	}, time.Second, 10*time.Millisecond)

	rq.Eventually(func() bool {
		clk.Add(time.Second)
		return svc.polls.Load() >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestQuotePollerAlertsOncePerEpisode(t *testing.T) {
	rq := require.New(t)

	svc := &quoteServiceFake{}
	svc.setChange("6")

	notifier := &notifierFake{}
	clk := clock.NewMock()

	poller := worker.NewQuotePoller(svc, time.Second, clk).
		WithNotifier(notifier).
		WithAlertThreshold(decimal.NewFromInt(5))

	rq.NoError(poller.Start(context.Background()))
	defer poller.Stop()

	rq.Eventually(func() bool {
		return notifier.alerts.Load() == 1
	}, time.Second, 10*time.Millisecond)

	// Движение держится над порогом: второго алерта нет.
	polls := svc.polls.Load()
	rq.Eventually(func() bool {
		clk.Add(time.Second)
		return svc.polls.Load() >= polls+2
	}, time.Second, 10*time.Millisecond)

	rq.Equal(int64(1), notifier.alerts.Load())

	// Возврат под порог закрывает эпизод, новое движение алертит снова.
	svc.setChange("1")

	polls = svc.polls.Load()
	rq.Eventually(func() bool {
		clk.Add(time.Second)
		return svc.polls.Load() >= polls+1
	}, time.Second, 10*time.Millisecond)

	svc.setChange("7")

	rq.Eventually(func() bool {
		clk.Add(time.Second)
		return notifier.alerts.Load() == 2
	}, time.Second, 10*time.Millisecond)
}
