package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/socialnet/api/internal/common/constants"
)

// TraceIDMiddleware reuses an incoming X-Trace-ID or mints one, and echoes it on the response.
func TraceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(constants.TraceIDHeader)
		if traceID == "" || len(traceID) > 64 {
			traceID = uuid.NewString()
		}

		w.Header().Set(constants.TraceIDHeader, traceID)

		ctx := context.WithValue(r.Context(), constants.TraceIDKey, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
