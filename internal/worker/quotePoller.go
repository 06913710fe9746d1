package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain/entity"
	"otc_desk/pkg/contextx"
	"otc_desk/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var (
	effectivePriceGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "otc_effective_price",
		Help: "Current public effective price by source.",
	}, []string{"source"})

	pollErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "otc_quote_poll_errors_total",
		Help: "Failed quote poll cycles.",
	})
)

type QuoteService interface {
	GetQuote(ctx context.Context, callerID string) (entity.Quote, error)
}

type Notifier interface {
	SendPriceAlert(ctx context.Context, quote entity.Quote) error
}

// QuotePoller периодически обновляет публичную котировку: греет кэш,
// публикует цену в метрики и дёргает опс-чат при резком суточном движении.
// Поллинг не останавливается на время активных локов — зафиксированную цену
// он не трогает, лок держит свой снимок сам.
type QuotePoller struct {
	quotes   QuoteService
	notifier Notifier
	clk      clock.Clock

	interval       time.Duration
	alertThreshold decimal.Decimal
	alerted        bool

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewQuotePoller(quotes QuoteService, interval time.Duration, clk clock.Clock) *QuotePoller {
	if clk == nil {
		clk = clock.New()
	}

	return &QuotePoller{
		quotes:         quotes,
		clk:            clk,
		interval:       interval,
		alertThreshold: decimal.NewFromInt(5), //nolint:mnd
	}
}

func (w *QuotePoller) WithNotifier(notifier Notifier) *QuotePoller {
	w.notifier = notifier
	return w
}

func (w *QuotePoller) WithAlertThreshold(percent decimal.Decimal) *QuotePoller {
	w.alertThreshold = percent
	return w
}

func (w *QuotePoller) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("poller is already running")
	}

	pollCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(pollCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(pollCtx).Error("poller stopped", logx.Error(err))
		}
	}()

	return nil
}

// Stop идемпотентен: повторный вызов на остановленном поллере — no-op.
func (w *QuotePoller) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// IsRunning возвращает текущий статус
func (w *QuotePoller) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

func (w *QuotePoller) Run(ctx context.Context) error {
	logger(ctx).Info("quote poller started", "interval", w.interval.String())

	ticker := w.clk.Ticker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("quote poller stopped")
			return ctx.Err()
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *QuotePoller) poll(ctx context.Context) {
	quote, err := w.quotes.GetQuote(ctx, "")
	if err != nil {
		pollErrorsTotal.Inc()
		logger(ctx).Error("quote poll failed", logx.Error(err))

		return
	}

	effectivePriceGauge.WithLabelValues(quote.Source.String()).Set(quote.EffectivePrice.InexactFloat64())

	w.maybeAlert(ctx, quote)
}

// maybeAlert шлёт алерт один раз на эпизод движения, пока изменение не
// вернётся под порог.
func (w *QuotePoller) maybeAlert(ctx context.Context, quote entity.Quote) {
	if w.notifier == nil {
		return
	}

	if quote.DailyChangePercent.Abs().LessThan(w.alertThreshold) {
		w.alerted = false
		return
	}

	if w.alerted {
		return
	}

	if err := w.notifier.SendPriceAlert(ctx, quote); err != nil {
		logger(ctx).Error("failed to send price alert", logx.Error(err))
		return
	}

	w.alerted = true
}
