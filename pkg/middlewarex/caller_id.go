package middlewarex

import (
	"net/http"

	"otc_desk/pkg/contextx"
)

// headerNameCallerID — идентификатор B2B-партнёра; проставляется слоем
// аутентификации перед этим сервисом.
const headerNameCallerID = "X-Partner-Id"

// CallerID кладёт идентификатор вызывающего в контекст. Пустой заголовок —
// публичный клиент, контекст не трогаем.
func CallerID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callerID := r.Header.Get(headerNameCallerID); callerID != "" {
			r = r.WithContext(contextx.WithCallerID(r.Context(), contextx.CallerID(callerID)))
		}

		next.ServeHTTP(w, r)
	})
}
