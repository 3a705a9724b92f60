package service

import (
	"time"

	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/pkg/jwtx"
)

// TokenService mints and verifies session tokens. Tokens carry only the
// subject id and username; the role is deliberately excluded so privilege
// checks always reflect the store (see httpx.RequireRole).
type TokenService struct {
	Signer *jwtx.HS256
	TTL    time.Duration
}

// Issue mints a signed session token for the user.
func (s *TokenService) Issue(u domain.User) (string, error) {
	return s.Signer.Sign(jwtx.NewSessionClaims(u.ID, u.Username, s.Lifetime(), time.Now().UTC()))
}

// Lifetime reports the effective token TTL.
func (s *TokenService) Lifetime() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Verify validates a raw token string. All failure modes come back as an
// error that outward-facing callers must treat as one "unauthenticated"
// outcome.
func (s *TokenService) Verify(raw string) (jwtx.Claims, error) {
	return s.Signer.Verify(raw)
}
