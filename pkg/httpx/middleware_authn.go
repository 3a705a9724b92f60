package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/galhub/galhub/pkg/jwtx"
	"github.com/galhub/galhub/pkg/slogx"
)

// AuthnMiddleware extracts and verifies the bearer token, attaching the
// decoded identity to the request context. Missing and invalid tokens both
// terminate with 401; the response never says which check failed beyond
// "no token" vs "bad token".
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "no access token provided")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				// Internal logging keeps the distinction; the caller does not
				log.Warn("token verification failed", "err", err)
				writeBearerError(w, "invalid or expired access token")
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, ReasonUnauthorized, desc)
}
