package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"appraisal/internal/requestctx"
)

// RequestID attaches a request id to the context and echoes it back in the
// X-Request-Id header. A caller-supplied id is honoured so clients can
// correlate retries.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), id)))
	})
}
