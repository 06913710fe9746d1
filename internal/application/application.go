package application

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"otc_desk/internal/config"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/service/pricelock"
	"otc_desk/internal/domain/service/quote"
	"otc_desk/internal/infrastructure/marketdata"
	"otc_desk/internal/infrastructure/notifier"
	"otc_desk/internal/infrastructure/persistence"
	"otc_desk/internal/infrastructure/pricecache"
	"otc_desk/internal/server"
	"otc_desk/internal/tasks"
	"otc_desk/internal/worker"
	"otc_desk/pkg/application/connectors"
	"otc_desk/pkg/application/modules"
	"otc_desk/pkg/contextx"
	"otc_desk/pkg/httpx"
	"otc_desk/pkg/logx"
	"otc_desk/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const logFieldMaxLen = 4096

func Run(ctx context.Context, cfg config.Config) error {
	g, ctx := errgroup.WithContext(ctx)

	masker := logx.NewSensitiveDataMasker()

	// Инфраструктура
	pg := &connectors.Postgres{ //nolint:exhaustruct
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rd := &connectors.Redis{ //nolint:exhaustruct
		Address:        cfg.Redis.Address,
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		DatabaseNumber: cfg.Redis.DatabaseNumber,
	}
	asynqClient := asynq.NewClientFromRedisClient(rd.Client(ctx))
	defer rd.Close(ctx)

	// Рыночные данные
	upstreamHTTPClient := &http.Client{ //nolint:exhaustruct
		Timeout: cfg.Pricing.UpstreamTimeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(masker),
			httpx.WithLogFieldMaxLen(logFieldMaxLen),
		),
	}

	adapter := marketdata.NewAdapter(
		marketdata.NewBinanceClient(cfg.Pricing.BinanceBaseURL, cfg.Pricing.BinanceSymbol, upstreamHTTPClient, nil),
		marketdata.NewOKXClient(cfg.Pricing.OKXBaseURL, cfg.Pricing.OKXInstrument, upstreamHTTPClient, nil),
	)

	// Доменные сервисы
	partners := persistence.NewPartnerProfileRepository(db)
	resolver := quote.NewMarkupResolver(partners)
	cache := pricecache.New(cfg.Pricing.CacheTTL, nil)
	quoteService := quote.NewService(resolver, cache, adapter)

	locks := pricelock.NewRegistry(nil, func(snapshot entity.PriceLock) {
		logger(ctx).Info("price lock expired",
			"lock_id", snapshot.ID,
			"policy", snapshot.Policy,
			"locked_price", snapshot.LockedPrice.String(),
		)
	})

	// Опс-чат: без токена деск работает молча.
	var opsBot *notifier.TelegramBot

	if cfg.Bot.Token != "" {
		bot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		if err := bot.SendText(ctx, cfg.App.Name+" started"); err != nil {
			logger(ctx).Warn("ops chat unreachable, notifications may be lost", logx.Error(err))
		}

		opsBot = bot
	}

	// Поллер публичной котировки
	alertThreshold, err := decimal.NewFromString(cfg.Pricing.AlertThresholdPercent)
	if err != nil {
		return fmt.Errorf("parse alert threshold: %w", err)
	}

	poller := worker.NewQuotePoller(quoteService, cfg.Pricing.PollInterval, nil).
		WithAlertThreshold(alertThreshold)

	if opsBot != nil {
		poller = poller.WithNotifier(opsBot)
	}

	if err := poller.Start(ctx); err != nil {
		return fmt.Errorf("poller.Start: %w", err)
	}
	defer poller.Stop()

	// HTTP API
	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.CallerID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	server.NewServer(
		server.NewQuoteServer(quoteService),
		server.NewLockServer(quoteService, locks),
		server.NewOrderServer(locks, tasks.NewEnqueuer(asynqClient)),
	).RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ShutdownTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	})

	modules.MetricServer{ListenAddress: cfg.App.MetricListenAddress}.Run(ctx, g)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
	}.Run(ctx, g)

	// Пайплайн заявок
	var orderNotifier tasks.Notifier
	if opsBot != nil {
		orderNotifier = opsBot
	}

	orderHandler := tasks.NewOrderHandler(persistence.NewOrderDraftRepository(db), orderNotifier)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{tasks.QueueOrders: 5}, //nolint:mnd
		modules.AsynqHandler{Pattern: tasks.TypeOrderSubmit, Handle: orderHandler.HandleOrderSubmit},
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
