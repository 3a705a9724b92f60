package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/galhub/galhub/internal/server/captcha"
	"github.com/galhub/galhub/internal/server/store"
	"github.com/galhub/galhub/internal/server/store/drivers/sqlite"
	"github.com/galhub/galhub/pkg/jwtx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestChallenges(t *testing.T) *captcha.Store {
	t.Helper()
	return captcha.NewStore(time.Minute, time.Minute, discardLogger())
}

func newTestIdentity(t *testing.T) (*IdentityService, *captcha.Store) {
	t.Helper()

	signer, err := jwtx.NewHS256([]byte("test-secret"))
	require.NoError(t, err)

	challenges := newTestChallenges(t)
	svc := &IdentityService{
		Store:      newTestStore(t),
		Tokens:     &TokenService{Signer: signer, TTL: time.Hour},
		Challenges: challenges,
		HashCost:   bcrypt.MinCost, // keep hashing fast in tests
	}
	return svc, challenges
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
