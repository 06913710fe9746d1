package server

import (
	"context"
	"fmt"
	"net/http"

	"otc_desk/internal/domain/entity"
	"otc_desk/pkg/contextx"
	"otc_desk/pkg/httpx/reply"
)

type quoteService interface {
	GetQuote(ctx context.Context, callerID string) (entity.Quote, error)
}

type QuoteServer struct {
	quoteService quoteService
}

func NewQuoteServer(quoteService quoteService) QuoteServer {
	return QuoteServer{
		quoteService: quoteService,
	}
}

func (s QuoteServer) getV1Quote(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	quote, err := s.quoteService.GetQuote(ctx, callerID(r))
	if err != nil {
		return fmt.Errorf("quoteService.GetQuote: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTQuote(quote))

	return nil
}

// callerID — идентификатор партнёра из контекста; пустая строка для
// публичного клиента.
func callerID(r *http.Request) string {
	id, err := contextx.CallerIDFromContext(r.Context())
	if err != nil {
		return ""
	}

	return id.String()
}
