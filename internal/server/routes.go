package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"otc_desk/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Get("/quote", handler(s.getV1Quote))

			r.Route("/lock", func(r chi.Router) {
				r.Get("/", handler(s.getV1Lock))
				r.Post("/", handler(s.postV1Lock))
				r.Delete("/", handler(s.deleteV1Lock))
				r.Post("/amount-changed", handler(s.postV1LockAmountChanged))
			})

			r.Post("/orders", handler(s.postV1Orders))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, asFailure(err))
		}
	}
}
