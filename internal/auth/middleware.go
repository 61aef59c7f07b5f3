package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type ownerContextKey struct{}

type Middleware struct {
	token   string
	ownerID uuid.UUID
}

func NewMiddleware(token string, ownerID uuid.UUID) Middleware {
	return Middleware{token: token, ownerID: ownerID}
}

func (m Middleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" {
			http.Error(w, "missing authorization", http.StatusUnauthorized)
			return
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(authz, prefix) || strings.TrimPrefix(authz, prefix) != m.token {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ownerContextKey{}, m.ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func OwnerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(ownerContextKey{})
	id, ok := v.(uuid.UUID)
	return id, ok
}
