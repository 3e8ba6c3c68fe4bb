package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ananyakrishnan/zaika/pkg/auth"
	"github.com/ananyakrishnan/zaika/pkg/response"
)

type userIDKey struct{}

// Auth verifies the bearer token and stores the authenticated user's ID in
// the request context. Requests without a valid token get the 401 shape the
// client maps to a login prompt.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user's ID, or 0 outside an Auth-wrapped
// handler.
func UserID(ctx context.Context) uint {
	id, _ := ctx.Value(userIDKey{}).(uint)
	return id
}
