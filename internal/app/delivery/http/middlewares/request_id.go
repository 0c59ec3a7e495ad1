package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"pathsys-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

// RequestID tags every request with a service-prefixed id; controllers
// pull it back out of the context for their success logs.
func (m *Middlewares) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderRequestID)
		if requestID == "" {
			requestID = fmt.Sprintf("%s%s", constvars.REQUEST_ID_PREFIX, uuid.New().String())
		}

		w.Header().Set(constvars.HeaderRequestID, requestID)
		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
