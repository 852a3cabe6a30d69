package middleware

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/catalog/pkg/auth"
	"github.com/shashiranjanraj/catalog/pkg/response"
)

// IdentityResolver maps a bearer token to the identity that owns it.
type IdentityResolver func(ctx context.Context, token string) (auth.Identity, error)

// Authenticate rejects requests without a resolvable bearer token before
// the handler runs. Resolver failures other than an unknown token surface
// through response.FromError.
func Authenticate(resolve IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.BearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				response.Unauthenticated(w)
				return
			}

			id, err := resolve(r.Context(), token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				response.FromError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
