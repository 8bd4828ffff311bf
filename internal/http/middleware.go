package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arjunsaxaena/CraveConnect/internal/auth"
	"github.com/arjunsaxaena/CraveConnect/internal/session"
)

// AuthMiddleware validates the bearer token and stashes the user id plus the
// raw token (for upstream propagation) in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
				return
			}
			tokenStr := strings.TrimPrefix(header, "Bearer ")

			userID, err := auth.UserID(tokenStr, secret)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			ctx := auth.WithUserID(r.Context(), userID)
			ctx = auth.WithToken(ctx, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartScopeMiddleware materializes the caller's cart aggregate and puts it in
// scope for the handlers below it. Must run after AuthMiddleware.
func CartScopeMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := auth.UserIDFromContext(r.Context())
			if userID == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
				return
			}

			cart := manager.Cart(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), cart)))
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}
