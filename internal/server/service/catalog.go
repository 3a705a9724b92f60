package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/internal/server/store"
	"github.com/galhub/galhub/pkg/idx"
)

const (
	gameTitleMaxLen = 255
	tagNameMaxLen   = 100
	maxTagsPerGame  = 20

	defaultPageSize = 20
	maxPageSize     = 100
	maxShelfSize    = 50 // latest/popular lists
)

// CatalogService covers games and tags. Reads are public; mutations are
// admin-gated at the route layer.
type CatalogService struct {
	Store store.Store
}

type GameParams struct {
	Title       string
	Alias       string
	Link        string
	CoverImage  string
	Description string
	Rating      float64
	Tags        []string
}

func (p *GameParams) validate() error {
	p.Title = strings.TrimSpace(p.Title)
	p.Alias = strings.TrimSpace(p.Alias)
	p.Description = strings.TrimSpace(p.Description)

	switch {
	case p.Title == "":
		return invalid("title", "is required")
	case len(p.Title) > gameTitleMaxLen:
		return invalid("title", "must be at most 255 characters")
	}
	if p.Rating < 0 || p.Rating > 10 {
		return invalid("rating", "must be between 0 and 10")
	}
	if p.Link != "" {
		if _, err := url.ParseRequestURI(p.Link); err != nil {
			return invalid("link", "is not a valid URL")
		}
	}
	if len(p.Tags) > maxTagsPerGame {
		p.Tags = p.Tags[:maxTagsPerGame]
	}
	return nil
}

// GamePage is one page of the game listing. Page and Limit are the values
// actually used after clamping, so pagination metadata matches the rows
// served rather than whatever the caller asked for.
type GamePage struct {
	Games []domain.Game
	Page  int
	Limit int
	Total int64
}

// ListGames returns a page of games with their tags attached, plus the
// total count for pagination.
func (s *CatalogService) ListGames(ctx context.Context, page, limit int, search string) (GamePage, error) {
	page = max(page, 1)
	if limit < 1 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)

	games, err := s.Store.Games().ListGames(ctx, page, limit, search)
	if err != nil {
		return GamePage{}, fmt.Errorf("list games: %w", err)
	}
	total, err := s.Store.Games().CountGames(ctx, search)
	if err != nil {
		return GamePage{}, fmt.Errorf("count games: %w", err)
	}

	if err := s.attachTags(ctx, games); err != nil {
		return GamePage{}, err
	}
	return GamePage{Games: games, Page: page, Limit: limit, Total: total}, nil
}

// LatestGames returns the most recently added games with tags.
func (s *CatalogService) LatestGames(ctx context.Context, limit int) ([]domain.Game, error) {
	games, err := s.Store.Games().ListLatestGames(ctx, clampShelf(limit))
	if err != nil {
		return nil, fmt.Errorf("list latest games: %w", err)
	}
	if err := s.attachTags(ctx, games); err != nil {
		return nil, err
	}
	return games, nil
}

// PopularGames returns games ordered by review count with tags.
func (s *CatalogService) PopularGames(ctx context.Context, limit int) ([]domain.Game, error) {
	games, err := s.Store.Games().ListPopularGames(ctx, clampShelf(limit))
	if err != nil {
		return nil, fmt.Errorf("list popular games: %w", err)
	}
	if err := s.attachTags(ctx, games); err != nil {
		return nil, err
	}
	return games, nil
}

// GetGame returns one game with its tags.
func (s *CatalogService) GetGame(ctx context.Context, id string) (domain.Game, error) {
	game, err := s.Store.Games().GetGameByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Game{}, ErrNotFound
		}
		return domain.Game{}, fmt.Errorf("get game: %w", err)
	}

	games := []domain.Game{game}
	if err := s.attachTags(ctx, games); err != nil {
		return domain.Game{}, err
	}
	return games[0], nil
}

// CreateGame inserts a game and its tags atomically, creating any tags
// that don't exist yet.
func (s *CatalogService) CreateGame(ctx context.Context, p GameParams) (domain.Game, error) {
	if err := p.validate(); err != nil {
		return domain.Game{}, err
	}

	game := domain.Game{
		ID:          idx.New().String(),
		Title:       p.Title,
		Alias:       p.Alias,
		Link:        p.Link,
		CoverImage:  p.CoverImage,
		Description: p.Description,
		Rating:      p.Rating,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Games().CreateGame(ctx, game); err != nil {
			return err
		}
		tagIDs, err := ensureTags(ctx, tx, p.Tags)
		if err != nil {
			return err
		}
		return tx.Games().SetGameTags(ctx, game.ID, tagIDs)
	})
	if err != nil {
		return domain.Game{}, fmt.Errorf("create game: %w", err)
	}

	return s.GetGame(ctx, game.ID)
}

// UpdateGame replaces a game's fields and tag set atomically.
func (s *CatalogService) UpdateGame(ctx context.Context, id string, p GameParams) (domain.Game, error) {
	if err := p.validate(); err != nil {
		return domain.Game{}, err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		game, err := tx.Games().GetGameByID(ctx, id)
		if err != nil {
			return err
		}

		game.Title = p.Title
		game.Alias = p.Alias
		game.Link = p.Link
		game.CoverImage = p.CoverImage
		game.Description = p.Description
		game.Rating = p.Rating
		if err := tx.Games().UpdateGame(ctx, game); err != nil {
			return err
		}

		tagIDs, err := ensureTags(ctx, tx, p.Tags)
		if err != nil {
			return err
		}
		return tx.Games().SetGameTags(ctx, id, tagIDs)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Game{}, ErrNotFound
		}
		return domain.Game{}, fmt.Errorf("update game: %w", err)
	}

	return s.GetGame(ctx, id)
}

// DeleteGame removes a game; tags links and reviews cascade in the schema.
func (s *CatalogService) DeleteGame(ctx context.Context, id string) error {
	if err := s.Store.Games().DeleteGame(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// ListTags returns all tags.
func (s *CatalogService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.Store.Tags().ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// CreateTag inserts a new named tag.
func (s *CatalogService) CreateTag(ctx context.Context, name string) (domain.Tag, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return domain.Tag{}, invalid("name", "is required")
	case len(name) > tagNameMaxLen:
		return domain.Tag{}, invalid("name", "must be at most 100 characters")
	}

	tag := domain.Tag{ID: idx.New().String(), Name: name}
	if err := s.Store.Tags().CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.Store.Tags().GetTagByName(ctx, name)
		}
		return domain.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return s.Store.Tags().GetTagByName(ctx, name)
}

// Stats holds the site-wide counters shown on the landing page.
type Stats struct {
	Games   int64
	Users   int64
	Reviews int64
}

// Stats returns the total game, user and review counts.
func (s *CatalogService) Stats(ctx context.Context) (Stats, error) {
	games, err := s.Store.Games().CountGames(ctx, "")
	if err != nil {
		return Stats{}, fmt.Errorf("count games: %w", err)
	}
	users, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	reviews, err := s.Store.Reviews().CountReviews(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count reviews: %w", err)
	}
	return Stats{Games: games, Users: users, Reviews: reviews}, nil
}

// attachTags fills in the Tags field for each listed game with one
// batched query.
func (s *CatalogService) attachTags(ctx context.Context, games []domain.Game) error {
	if len(games) == 0 {
		return nil
	}

	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}

	byGame, err := s.Store.Games().TagsForGames(ctx, ids)
	if err != nil {
		return fmt.Errorf("load game tags: %w", err)
	}
	for i := range games {
		games[i].Tags = byGame[games[i].ID]
	}
	return nil
}

// ensureTags resolves tag names to ids inside a transaction, creating
// missing tags on the fly. Blank names are skipped, long ones truncated.
func ensureTags(ctx context.Context, tx store.Tx, names []string) ([]string, error) {
	var ids []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(name) > tagNameMaxLen {
			name = name[:tagNameMaxLen]
		}

		tag, err := tx.Tags().GetTagByName(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			tag = domain.Tag{ID: idx.New().String(), Name: name}
			if err := tx.Tags().CreateTag(ctx, tag); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func clampShelf(limit int) int {
	if limit < 1 {
		limit = 10
	}
	return min(limit, maxShelfSize)
}
