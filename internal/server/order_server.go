package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/service/order"
	"otc_desk/internal/domain/service/pricelock"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
	"otc_desk/pkg/httpx/reply"
	"otc_desk/pkg/httpx/req"
	"otc_desk/pkg/rest"
)

type orderEnqueuer interface {
	EnqueueOrderSubmit(ctx context.Context, draft entity.OrderDraft) error
}

type OrderServer struct {
	locks    *pricelock.Registry
	enqueuer orderEnqueuer
}

func NewOrderServer(locks *pricelock.Registry, enqueuer orderEnqueuer) OrderServer {
	return OrderServer{
		locks:    locks,
		enqueuer: enqueuer,
	}
}

func (s OrderServer) postV1Orders(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sessionID, err := sessionID(r)
	if err != nil {
		return err
	}

	var request rest.OrderRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	amount, err := decimal.NewFromString(request.Amount)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("decimal.NewFromString: %w", err),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid amount"),
		)
	}

	lock, err := s.locks.Get(sessionID)
	if err != nil {
		return fmt.Errorf("locks.Get: %w", err)
	}

	draft, err := order.Assemble(
		lock.Snapshot(),
		callerID(r),
		amount,
		value.Network(request.Network),
		request.WalletAddress,
	)
	if err != nil {
		return fmt.Errorf("order.Assemble: %w", err)
	}

	if err := s.enqueuer.EnqueueOrderSubmit(ctx, draft); err != nil {
		return fmt.Errorf("enqueuer.EnqueueOrderSubmit: %w", err)
	}

	// Заявка ушла в очередь, лок своё отработал.
	s.locks.Release(sessionID)

	reply.JSON(ctx, w, http.StatusCreated, newRESTOrderDraft(draft))

	return nil
}
