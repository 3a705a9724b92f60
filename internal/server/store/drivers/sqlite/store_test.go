package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

// Pragmas must ride on the DSN so they hold on every connection database/sql
// hands out, not just the first. Pinning two connections at once forces the
// pool to open at least two and lets us read the pragmas back from each.
func TestPragmasApplyToEveryConnection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	conn1, err := s.db.Conn(ctx)
	require.NoError(t, err)
	defer conn1.Close()
	conn2, err := s.db.Conn(ctx)
	require.NoError(t, err)
	defer conn2.Close()

	for _, conn := range []*sql.Conn{conn1, conn2} {
		var fk, busy int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&busy))
		require.Equal(t, 1, fk, "foreign key enforcement is off")
		require.Equal(t, 5000, busy, "busy timeout is not set")
	}
}

func TestUserRoleMustBeKnown(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := domain.User{
		ID:           idx.New().String(),
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "x",
		Role:         domain.RoleUser,
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	err := s.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Username:     "eve",
		Email:        "eve@example.com",
		PasswordHash: "x",
		Role:         "superuser",
	})
	require.ErrorContains(t, err, "unknown role")

	require.ErrorContains(t, s.Users().UpdateRole(ctx, user.ID, "root"), "unknown role")
	require.NoError(t, s.Users().UpdateRole(ctx, user.ID, domain.RoleAdmin))

	got, err := s.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, got.Role)
}

func TestDeleteGameCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := domain.User{
		ID:           idx.New().String(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         domain.RoleUser,
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	game := domain.Game{ID: idx.New().String(), Title: "Clannad"}
	require.NoError(t, s.Games().CreateGame(ctx, game))

	tag := domain.Tag{ID: idx.New().String(), Name: "drama"}
	require.NoError(t, s.Tags().CreateTag(ctx, tag))
	require.NoError(t, s.Games().SetGameTags(ctx, game.ID, []string{tag.ID}))

	review := domain.Review{
		ID:      idx.New().String(),
		GameID:  game.ID,
		UserID:  user.ID,
		Rating:  5,
		Comment: "still crying",
	}
	require.NoError(t, s.Reviews().CreateReview(ctx, review))

	require.NoError(t, s.Games().DeleteGame(ctx, game.ID))

	reviews, err := s.Reviews().ListReviewsByGame(ctx, game.ID)
	require.NoError(t, err)
	require.Empty(t, reviews, "reviews survived the game delete")

	var links int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM game_tags WHERE game_id = ?`, game.ID).Scan(&links))
	require.Zero(t, links, "tag links survived the game delete")

	// The tag itself is shared metadata and must remain.
	_, err = s.Tags().GetTagByName(ctx, "drama")
	require.NoError(t, err)
}
