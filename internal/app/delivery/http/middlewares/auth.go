package middlewares

import (
	"context"
	"net/http"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/exceptions"
	"pathsys-service/internal/pkg/utils"
	"strings"
)

// Authenticate resolves the bearer token into a session and stores the
// caller on the context. Expired or logged-out sessions fail here, not
// in the engines.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		session, err := m.AuthUsecase.ResolveSession(r.Context(), sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_ID_KEY, sessionID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_CURRENT_USER_KEY, session.ToCurrentUser())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route to the given roles; it composes after
// Authenticate.
func (m *Middlewares) RequireRoles(roles ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := utils.GetCurrentUser(r)
			if caller == nil || !allowed[caller.Role] {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotAuthorized(nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
