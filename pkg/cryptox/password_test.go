package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 70)},
		{"empty password", ""},
		{"unicode password", "密码пароль1"},
		{"whitespace password", "   spaces 1  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, bcrypt.MinCost)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.True(t, strings.HasPrefix(hash, "$2"), "hash should be bcrypt encoded")

			require.True(t, VerifyPassword(tt.password, hash))
			require.False(t, VerifyPassword(tt.password+"x", hash))
		})
	}
}

func TestHashPasswordSaltFreshness(t *testing.T) {
	h1, err := HashPassword("same-password1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same-password1", bcrypt.MinCost)
	require.NoError(t, err)

	// Fresh salt per call, so the stored values must differ
	require.NotEqual(t, h1, h2)
	require.True(t, VerifyPassword("same-password1", h1))
	require.True(t, VerifyPassword("same-password1", h2))
}

func TestHashPasswordDefaultCost(t *testing.T) {
	hash, err := HashPassword("password1", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, DefaultHashCost, cost)
}

func TestHashPasswordRejectsBadCost(t *testing.T) {
	_, err := HashPassword("password1", 99)
	require.Error(t, err)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, h := range []string{"", "not-a-hash", "$2a$garbage", "$argon2id$v=19$..."} {
		require.False(t, VerifyPassword("password1", h), "hash %q", h)
	}
}

func TestRandomText(t *testing.T) {
	const charset = "abcdefghjkmnpqrstuvwxyz23456789"

	text, err := RandomText(4, charset)
	require.NoError(t, err)
	require.Len(t, text, 4)
	for _, c := range text {
		require.Contains(t, charset, string(c))
	}

	_, err = RandomText(0, charset)
	require.Error(t, err)
	_, err = RandomText(4, "")
	require.Error(t, err)
}
