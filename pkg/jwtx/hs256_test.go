package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

func newTestSigner(t *testing.T) *HS256 {
	t.Helper()
	s, err := NewHS256([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestNewHS256RejectsEmptySecret(t *testing.T) {
	_, err := NewHS256(nil)
	require.Error(t, err)
}

func TestSignAndVerify(t *testing.T) {
	s := newTestSigner(t)

	now := time.Now().UTC()
	claims := NewSessionClaims("user-123", "alice", DefaultSessionTTL, now)

	raw, err := s.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, err := s.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.WithinDuration(t, now.Add(DefaultSessionTTL), got.ExpiresAt.Time, time.Second)
}

func TestVerifyExpiryBoundaries(t *testing.T) {
	s := newTestSigner(t)

	t.Run("valid shortly before expiry", func(t *testing.T) {
		// Issued 23h59m ago with a 24h TTL: one minute of life left
		claims := NewSessionClaims("u", "alice", DefaultSessionTTL, time.Now().UTC().Add(-23*time.Hour-59*time.Minute))
		raw, err := s.Sign(claims)
		require.NoError(t, err)

		_, err = s.Verify(raw)
		require.NoError(t, err)
	})

	t.Run("rejected shortly after expiry", func(t *testing.T) {
		claims := NewSessionClaims("u", "alice", DefaultSessionTTL, time.Now().UTC().Add(-24*time.Hour-time.Minute))
		raw, err := s.Sign(claims)
		require.NoError(t, err)

		_, err = s.Verify(raw)
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestVerifyTamperedToken(t *testing.T) {
	s := newTestSigner(t)

	raw, err := s.Sign(NewSessionClaims("user-123", "alice", DefaultSessionTTL, time.Now().UTC()))
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)

	flip := func(seg string) string {
		b := []byte(seg)
		if b[0] == 'A' {
			b[0] = 'B'
		} else {
			b[0] = 'A'
		}
		return string(b)
	}

	t.Run("tampered signature", func(t *testing.T) {
		_, err := s.Verify(parts[0] + "." + parts[1] + "." + flip(parts[2]))
		require.Error(t, err)
	})

	t.Run("tampered claims", func(t *testing.T) {
		_, err := s.Verify(parts[0] + "." + flip(parts[1]) + "." + parts[2])
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewHS256([]byte("a-different-secret"))
		require.NoError(t, err)

		_, err = other.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidSig)
	})
}

func TestVerifyStructuralFailures(t *testing.T) {
	s := newTestSigner(t)

	for _, raw := range []string{"", "abc", "a.b", "a.b.c.d", "....."} {
		_, err := s.Verify(raw)
		require.Error(t, err, "token %q", raw)
	}
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	s := newTestSigner(t)

	raw, err := s.Sign(NewSessionClaims("", "alice", DefaultSessionTTL, time.Now().UTC()))
	require.NoError(t, err)

	_, err = s.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidClaim)
}
