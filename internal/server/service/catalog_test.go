package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Store: newTestStore(t)}
}

func TestCreateGame(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, GameParams{
		Title:       "Outer Wilds",
		Alias:       "outer-wilds",
		Link:        "https://example.com/outer-wilds",
		Description: "A space exploration mystery.",
		Rating:      9.5,
		Tags:        []string{"exploration", "puzzle"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, game.ID)
	assert.Equal(t, "Outer Wilds", game.Title)
	assert.InDelta(t, 9.5, game.Rating, 0.001)
	require.Len(t, game.Tags, 2)

	names := []string{game.Tags[0].Name, game.Tags[1].Name}
	assert.ElementsMatch(t, []string{"exploration", "puzzle"}, names)
}

func TestCreateGameReusesExistingTags(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	first, err := svc.CreateGame(ctx, GameParams{Title: "A", Tags: []string{"puzzle"}})
	require.NoError(t, err)
	second, err := svc.CreateGame(ctx, GameParams{Title: "B", Tags: []string{"puzzle"}})
	require.NoError(t, err)

	require.Len(t, first.Tags, 1)
	require.Len(t, second.Tags, 1)
	assert.Equal(t, first.Tags[0].ID, second.Tags[0].ID)

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestCreateGameValidation(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	longTitle := make([]byte, gameTitleMaxLen+1)
	for i := range longTitle {
		longTitle[i] = 'a'
	}

	cases := []struct {
		name   string
		params GameParams
	}{
		{"empty title", GameParams{Title: "  "}},
		{"title too long", GameParams{Title: string(longTitle)}},
		{"rating below range", GameParams{Title: "A", Rating: -1}},
		{"rating above range", GameParams{Title: "A", Rating: 10.5}},
		{"malformed link", GameParams{Title: "A", Link: "not a url"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateGame(ctx, tc.params)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestListGamesPaginationAndSearch(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	titles := []string{"Hollow Knight", "Hades", "Celeste"}
	for _, title := range titles {
		_, err := svc.CreateGame(ctx, GameParams{Title: title})
		require.NoError(t, err)
	}

	t.Run("first page", func(t *testing.T) {
		page, err := svc.ListGames(ctx, 1, 2, "")
		require.NoError(t, err)
		assert.Len(t, page.Games, 2)
		assert.EqualValues(t, 3, page.Total)
	})

	t.Run("second page", func(t *testing.T) {
		page, err := svc.ListGames(ctx, 2, 2, "")
		require.NoError(t, err)
		assert.Len(t, page.Games, 1)
		assert.EqualValues(t, 3, page.Total)
	})

	t.Run("case-insensitive search", func(t *testing.T) {
		page, err := svc.ListGames(ctx, 1, 20, "hAdEs")
		require.NoError(t, err)
		require.Len(t, page.Games, 1)
		assert.EqualValues(t, 1, page.Total)
		assert.Equal(t, "Hades", page.Games[0].Title)
	})

	t.Run("out-of-range page params are clamped", func(t *testing.T) {
		page, err := svc.ListGames(ctx, 0, -5, "")
		require.NoError(t, err)
		assert.Len(t, page.Games, 3)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.Limit)
	})

	t.Run("oversized limit is capped", func(t *testing.T) {
		page, err := svc.ListGames(ctx, 1, 500, "")
		require.NoError(t, err)
		assert.Equal(t, 100, page.Limit)
	})
}

func TestUpdateGame(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, GameParams{Title: "Before", Rating: 5, Tags: []string{"old"}})
	require.NoError(t, err)

	updated, err := svc.UpdateGame(ctx, game.ID, GameParams{Title: "After", Rating: 8, Tags: []string{"new"}})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Title)
	assert.InDelta(t, 8, updated.Rating, 0.001)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "new", updated.Tags[0].Name)

	_, err = svc.UpdateGame(ctx, "01J0000000000000000000000A", GameParams{Title: "X"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGame(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, GameParams{Title: "Doomed", Tags: []string{"short-lived"}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGame(ctx, game.ID))
	_, err = svc.GetGame(ctx, game.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, svc.DeleteGame(ctx, game.ID), ErrNotFound)
}

func TestPopularGamesOrdersByReviewCount(t *testing.T) {
	st := newTestStore(t)
	catalogSvc := &CatalogService{Store: st}
	reviewSvc := &ReviewService{Store: st}
	identitySvc, ch := newTestIdentity(t)
	identitySvc.Store = st
	ctx := context.Background()

	quiet, err := catalogSvc.CreateGame(ctx, GameParams{Title: "Quiet"})
	require.NoError(t, err)
	popular, err := catalogSvc.CreateGame(ctx, GameParams{Title: "Popular"})
	require.NoError(t, err)

	for _, name := range []string{"alice", "bob"} {
		user, _, err := identitySvc.Register(ctx, registerParams(ch, name, name+"@example.com", "password1"))
		require.NoError(t, err)
		_, err = reviewSvc.CreateReview(ctx, user.ID, popular.ID, ReviewParams{Rating: 5})
		require.NoError(t, err)
	}

	games, err := catalogSvc.PopularGames(ctx, 10)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, popular.ID, games[0].ID)
	assert.Equal(t, quiet.ID, games[1].ID)
}

func TestStats(t *testing.T) {
	st := newTestStore(t)
	catalogSvc := &CatalogService{Store: st}
	reviewSvc := &ReviewService{Store: st}
	identitySvc, ch := newTestIdentity(t)
	identitySvc.Store = st
	ctx := context.Background()

	empty, err := catalogSvc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Games)
	assert.Zero(t, empty.Users)
	assert.Zero(t, empty.Reviews)

	game, err := catalogSvc.CreateGame(ctx, GameParams{Title: "Stardew Valley"})
	require.NoError(t, err)
	_, err = catalogSvc.CreateGame(ctx, GameParams{Title: "Terraria"})
	require.NoError(t, err)

	user, _, err := identitySvc.Register(ctx, registerParams(ch, "carol", "carol@example.com", "password1"))
	require.NoError(t, err)
	_, err = reviewSvc.CreateReview(ctx, user.ID, game.ID, ReviewParams{Rating: 4})
	require.NoError(t, err)

	stats, err := catalogSvc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Games)
	assert.EqualValues(t, 1, stats.Users)
	assert.EqualValues(t, 1, stats.Reviews)
}

func TestCreateTag(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, "  roguelike ")
	require.NoError(t, err)
	assert.Equal(t, "roguelike", tag.Name)

	// Creating the same name again returns the existing tag.
	again, err := svc.CreateTag(ctx, "roguelike")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, again.ID)

	_, err = svc.CreateTag(ctx, "   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
