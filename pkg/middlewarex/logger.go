package middlewarex

import (
	"log/slog"
	"net/http"

	"otc_desk/pkg/contextx"
	"otc_desk/pkg/logx"
)

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID, err := contextx.TraceIDFromContext(ctx)
		if err != nil {
			logger(ctx).Error("contextx.TraceIDFromContext", logx.Error(err))
		}

		log := logger(ctx).With(
			logx.Stringer(logx.FieldTraceID, traceID),
			logx.Stringer(logx.FieldURL, r.URL),
			slog.String(logx.FieldHTTPMethod, r.Method),
			slog.String(logx.FieldIP, r.RemoteAddr),
		)

		if callerID, err := contextx.CallerIDFromContext(ctx); err == nil {
			log = log.With(logx.Stringer(logx.FieldCallerID, callerID))
		}

		next.ServeHTTP(w, r.WithContext(contextx.WithLogger(ctx, log)))
	})
}
