package server

import (
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain/service/pricelock"
	"otc_desk/pkg/errcodes"
	"otc_desk/pkg/httpx/reply"
	"otc_desk/pkg/httpx/req"
	"otc_desk/pkg/rest"
)

// headerNameSessionID — сессия формы заявки; на сессию существует не больше
// одного активного лока.
const headerNameSessionID = "X-Session-Id"

type LockServer struct {
	quoteService quoteService
	locks        *pricelock.Registry
}

func NewLockServer(quoteService quoteService, locks *pricelock.Registry) LockServer {
	return LockServer{
		quoteService: quoteService,
		locks:        locks,
	}
}

func (s LockServer) postV1Lock(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sessionID, err := sessionID(r)
	if err != nil {
		return err
	}

	var request rest.LockRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	policy, err := pricelock.ParsePolicy(request.Policy)
	if err != nil {
		return fmt.Errorf("pricelock.ParsePolicy: %w", err)
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("decimal.NewFromString: %w", err),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid amount"),
		)
	}

	// Лок фиксирует цену по профилю вызывающего: партнёр локирует свою
	// договорную цену, не публичную.
	quote, err := s.quoteService.GetQuote(ctx, callerID(r))
	if err != nil {
		return fmt.Errorf("quoteService.GetQuote: %w", err)
	}

	lock, err := s.locks.Obtain(sessionID, policy)
	if err != nil {
		return fmt.Errorf("locks.Obtain: %w", err)
	}

	snapshot, err := lock.Lock(quote, amount)
	if err != nil {
		return fmt.Errorf("lock.Lock: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTLock(snapshot))

	return nil
}

func (s LockServer) getV1Lock(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sessionID, err := sessionID(r)
	if err != nil {
		return err
	}

	lock, err := s.locks.Get(sessionID)
	if err != nil {
		return fmt.Errorf("locks.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTLock(lock.Snapshot()))

	return nil
}

func (s LockServer) deleteV1Lock(w http.ResponseWriter, r *http.Request) error {
	sessionID, err := sessionID(r)
	if err != nil {
		return err
	}

	s.locks.Release(sessionID)

	reply.OK(w)

	return nil
}

// postV1LockAmountChanged — UI сообщает об изменении суммы или стороны
// сделки: активный лок немедленно снимается.
func (s LockServer) postV1LockAmountChanged(w http.ResponseWriter, r *http.Request) error {
	sessionID, err := sessionID(r)
	if err != nil {
		return err
	}

	lock, err := s.locks.Get(sessionID)
	if err != nil {
		return fmt.Errorf("locks.Get: %w", err)
	}

	lock.AmountChanged()

	reply.OK(w)

	return nil
}

func sessionID(r *http.Request) (string, error) {
	sessionID := r.Header.Get(headerNameSessionID)
	if sessionID == "" {
		return "", failure.NewInvalidArgumentError(
			"session id required",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("X-Session-Id header is required"),
		)
	}

	return sessionID, nil
}
