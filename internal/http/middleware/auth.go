package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/stock-manager/internal/auth"
	"github.com/rogerio-castellano/stock-manager/internal/models"
)

type TokenParser interface {
	ParseAccessToken(token string) (*auth.Claims, error)
}

type contextKey string

const identityKey = contextKey("identity")

var tokenParser TokenParser

func SetTokenParser(p TokenParser) {
	tokenParser = p
}

// AuthMiddleware rejects requests without a valid bearer access token and
// stores the caller identity in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}
		if tokenParser == nil {
			http.Error(w, "authentication not configured", http.StatusInternalServerError)
			return
		}

		claims, err := tokenParser.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		identity, err := claims.Identity()
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// RequireManagerForWrites lets any authenticated caller read and only
// managers and admins write.
func RequireManagerForWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}
		if !isSafeMethod(r.Method) && !id.HasAnyRole(models.RoleManager, models.RoleAdmin) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
