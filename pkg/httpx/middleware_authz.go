package httpx

import (
	"context"
	"net/http"

	"github.com/galhub/galhub/pkg/slogx"
)

// RoleLookup resolves the current role for a user id from the credential
// store. found is false when the identity no longer exists.
type RoleLookup func(ctx context.Context, userID string) (role string, found bool, err error)

// RequireRole gates a route on the caller's current role. The role is
// re-fetched from the store rather than read from the token, so a demoted
// admin loses access as soon as the store says so, not at token expiry.
// Must run after AuthnMiddleware.
func RequireRole(required string, lookup RoleLookup) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			userID := UserIDFromContext(ctx)
			if userID == "" {
				writeBearerError(w, "no access token provided")
				return
			}

			role, found, err := lookup(ctx, userID)
			if err != nil {
				log.Error("role lookup failed", "user_id", userID, "err", err)
				WriteError(w, http.StatusInternalServerError, ReasonServerError, "internal server error")
				return
			}
			if !found {
				// Token subject no longer exists
				writeBearerError(w, "invalid or expired access token")
				return
			}
			if role != required {
				writeRoleError(w, required)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for insufficient privilege.
func writeRoleError(w http.ResponseWriter, required string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+required+`"`)
	WriteError(w, http.StatusForbidden, ReasonForbidden, "insufficient privileges")
}
