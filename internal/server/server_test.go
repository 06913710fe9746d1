package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/service/pricelock"
	"otc_desk/internal/domain/value"
	"otc_desk/internal/server"
	"otc_desk/pkg/middlewarex"
	"otc_desk/pkg/rest"
	"otc_desk/pkg/tests"
)

type quoteServiceFake struct{}

func (quoteServiceFake) GetQuote(_ context.Context, callerID string) (entity.Quote, error) {
	markup := decimal.RequireFromString("1.0")
	effective := decimal.RequireFromString("5.454")

	if callerID == "partner-1" {
		markup = decimal.RequireFromString("0.5")
		effective = decimal.RequireFromString("5.427")
	}

	return entity.Quote{
		BasePrice:          decimal.RequireFromString("5.40"),
		MarkupPercent:      markup,
		EffectivePrice:     effective,
		StandardPrice:      decimal.RequireFromString("5.454"),
		Savings:            decimal.RequireFromString("5.454").Sub(effective),
		DailyChangePercent: decimal.RequireFromString("0.85"),
		Volume:             decimal.RequireFromString("1250000"),
		High24h:            decimal.RequireFromString("5.52"),
		Low24h:             decimal.RequireFromString("5.31"),
		TradeCount:         18345,
		Source:             value.SourceBinance,
		FetchedAt:          time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}, nil
}

type enqueuerFake struct {
	mu     sync.Mutex
	drafts []entity.OrderDraft
}

func (e *enqueuerFake) EnqueueOrderSubmit(_ context.Context, draft entity.OrderDraft) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.drafts = append(e.drafts, draft)

	return nil
}

func (e *enqueuerFake) enqueued() []entity.OrderDraft {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]entity.OrderDraft(nil), e.drafts...)
}

func newTestAPI(t *testing.T) (tests.APIClient, *enqueuerFake) {
	t.Helper()

	locks := pricelock.NewRegistry(clock.NewMock(), nil)
	enqueuer := &enqueuerFake{}

	router := chi.NewRouter()
	router.Use(middlewarex.CallerID)
	server.NewServer(
		server.NewQuoteServer(quoteServiceFake{}),
		server.NewLockServer(quoteServiceFake{}, locks),
		server.NewOrderServer(locks, enqueuer),
	).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return tests.NewAPIClient(srv.URL, srv.Client()), enqueuer
}

func sessionHeaders(sessionID string) http.Header {
	return http.Header{"X-Session-Id": []string{sessionID}}
}

func TestGetQuote(t *testing.T) {
	rq := require.New(t)
	api, _ := newTestAPI(t)

	var quote rest.Quote

	resp, err := api.Get(context.Background(), "/v1/quote", nil, &quote, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal("5.4540", quote.EffectivePrice)
	rq.Equal("5.4540", quote.StandardPrice)
	rq.Equal("binance", quote.Source)
	rq.False(quote.Stale)
}

func TestGetQuotePartnerHeader(t *testing.T) {
	rq := require.New(t)
	api, _ := newTestAPI(t)

	var quote rest.Quote

	headers := http.Header{"X-Partner-Id": []string{"partner-1"}}

	resp, err := api.Get(context.Background(), "/v1/quote", headers, &quote, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal("5.4270", quote.EffectivePrice)
	rq.Equal("5.4540", quote.StandardPrice)
	rq.Equal("0.027", quote.Savings)
}

func TestLockLifecycle(t *testing.T) {
	rq := require.New(t)
	api, _ := newTestAPI(t)
	ctx := context.Background()

	headers := sessionHeaders("session-1")

	var lock rest.Lock

	resp, err := api.Post(ctx, "/v1/lock", headers, rest.LockRequest{
		Policy: "standard",
		Amount: "150",
	}, &lock, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	rq.Equal("locked", lock.State)
	rq.Equal("standard", lock.Policy)
	rq.Equal("5.4540", lock.LockedPrice)
	rq.Equal(int64(300), lock.RemainingSeconds)

	var current rest.Lock

	resp, err = api.Get(ctx, "/v1/lock", headers, &current, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(lock.ID, current.ID)

	resp, err = api.Delete(ctx, "/v1/lock", headers, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	var errResp rest.Error

	resp, err = api.Get(ctx, "/v1/lock", headers, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode("LockNotFound"), errResp.Code)
}

func TestLockRequiresSessionHeader(t *testing.T) {
	rq := require.New(t)
	api, _ := newTestAPI(t)

	resp, err := api.Post(context.Background(), "/v1/lock", nil, rest.LockRequest{
		Policy: "standard",
		Amount: "150",
	}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestLockUnknownPolicy(t *testing.T) {
	rq := require.New(t)
	api, _ := newTestAPI(t)

	resp, err := api.Post(context.Background(), "/v1/lock", sessionHeaders("session-1"), rest.LockRequest{
		Policy: "forever",
		Amount: "150",
	}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestAmountChangeUnlocks(t *testing.T) {
	rq := require.New(t)
	api, _ := newTestAPI(t)
	ctx := context.Background()

	headers := sessionHeaders("session-1")

	resp, err := api.Post(ctx, "/v1/lock", headers, rest.LockRequest{
		Policy: "standard",
		Amount: "150",
	}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	resp, err = api.Post(ctx, "/v1/lock/amount-changed", headers, struct{}{}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	var current rest.Lock

	resp, err = api.Get(ctx, "/v1/lock", headers, &current, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal("unlocked", current.State)
	rq.Empty(current.LockedPrice)
}

func TestSubmitOrder(t *testing.T) {
	rq := require.New(t)
	api, enqueuer := newTestAPI(t)
	ctx := context.Background()

	headers := sessionHeaders("session-1")

	resp, err := api.Post(ctx, "/v1/lock", headers, rest.LockRequest{
		Policy: "standard",
		Amount: "150",
	}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	var draft rest.OrderDraft

	resp, err = api.Post(ctx, "/v1/orders", headers, rest.OrderRequest{
		Amount:        "150",
		Network:       "TRC20",
		WalletAddress: "TNPeeaaFB7K9cmo4uQpcU32zGK8G1NYqeL",
	}, &draft, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	rq.NotEmpty(draft.ID)
	rq.Equal("5.4540", draft.LockedPrice)
	rq.Equal("818.1", draft.Total)

	enqueued := enqueuer.enqueued()
	rq.Len(enqueued, 1)
	rq.Equal(draft.ID, enqueued[0].ID)

	// Лок использован и освобождён.
	var errResp rest.Error

	resp, err = api.Get(ctx, "/v1/lock", headers, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestSubmitOrderWithoutLock(t *testing.T) {
	rq := require.New(t)
	api, _ := newTestAPI(t)

	var errResp rest.Error

	resp, err := api.Post(context.Background(), "/v1/orders", sessionHeaders("session-1"), rest.OrderRequest{
		Amount:        "150",
		Network:       "TRC20",
		WalletAddress: "TNPeeaaFB7K9cmo4uQpcU32zGK8G1NYqeL",
	}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode("LockNotFound"), errResp.Code)
}

func TestSubmitOrderInvalidWallet(t *testing.T) {
	rq := require.New(t)
	api, _ := newTestAPI(t)
	ctx := context.Background()

	headers := sessionHeaders("session-1")

	resp, err := api.Post(ctx, "/v1/lock", headers, rest.LockRequest{
		Policy: "express",
		Amount: "150",
	}, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)

	var errResp rest.Error

	resp, err = api.Post(ctx, "/v1/orders", headers, rest.OrderRequest{
		Amount:        "150",
		Network:       "ERC20",
		WalletAddress: "0xShort",
	}, nil, &errResp)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("InvalidWalletAddress"), errResp.Code)
}
