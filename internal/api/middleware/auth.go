package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fourline/gameroom/internal/api/apierr"
	"github.com/fourline/gameroom/internal/model"
	"github.com/fourline/gameroom/internal/services/identity"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Auth creates authentication middleware. The verified token identity
// is placed on the request context as an explicit value; handlers read
// it with GetIdentity rather than re-parsing the token.
func Auth(identityService *identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ident, err := identityService.Verify(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetIdentity returns the authenticated identity from the request context
func GetIdentity(ctx context.Context) *model.Identity {
	ident, _ := ctx.Value(identityContextKey).(*model.Identity)
	return ident
}

// MustGetIdentity returns the authenticated identity or panics
func MustGetIdentity(ctx context.Context) *model.Identity {
	ident := GetIdentity(ctx)
	if ident == nil {
		panic("no identity in context - auth middleware not applied?")
	}
	return ident
}
