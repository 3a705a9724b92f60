package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/galhub/galhub/internal/server/domain"
)

type gamesRepo struct {
	db dbtx
}

const gameColumns = `id, title, alias, link, cover_image, description, rating, created_at, updated_at`

func scanGame(scan func(dest ...any) error) (domain.Game, error) {
	var g domain.Game
	err := scan(&g.ID, &g.Title, &g.Alias, &g.Link, &g.CoverImage,
		&g.Description, &g.Rating, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func collectGames(rows *sql.Rows) ([]domain.Game, error) {
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		g, err := scanGame(rows.Scan)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *gamesRepo) GetGameByID(ctx context.Context, id string) (domain.Game, error) {
	g, err := scanGame(r.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id).Scan)
	if err != nil {
		return domain.Game{}, mapNotFound(err)
	}
	return g, nil
}

func (r *gamesRepo) ListGames(ctx context.Context, page, limit int, search string) ([]domain.Game, error) {
	offset := (page - 1) * limit

	if search != "" {
		pattern := "%" + search + "%"
		rows, err := r.db.QueryContext(ctx,
			`SELECT `+gameColumns+` FROM games
			 WHERE title LIKE ? COLLATE NOCASE OR alias LIKE ? COLLATE NOCASE
			 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
			pattern, pattern, limit, offset,
		)
		if err != nil {
			return nil, err
		}
		return collectGames(rows)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectGames(rows)
}

func (r *gamesRepo) CountGames(ctx context.Context, search string) (int64, error) {
	var n int64
	if search != "" {
		pattern := "%" + search + "%"
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM games
			 WHERE title LIKE ? COLLATE NOCASE OR alias LIKE ? COLLATE NOCASE`,
			pattern, pattern,
		).Scan(&n)
		return n, err
	}
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}

func (r *gamesRepo) ListLatestGames(ctx context.Context, limit int) ([]domain.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectGames(rows)
}

func (r *gamesRepo) ListPopularGames(ctx context.Context, limit int) ([]domain.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.title, g.alias, g.link, g.cover_image, g.description, g.rating, g.created_at, g.updated_at
		 FROM games g
		 LEFT JOIN reviews rv ON rv.game_id = g.id
		 GROUP BY g.id
		 ORDER BY COUNT(rv.id) DESC, g.created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectGames(rows)
}

func (r *gamesRepo) CreateGame(ctx context.Context, g domain.Game) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO games (id, title, alias, link, cover_image, description, rating)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, g.Alias, g.Link, g.CoverImage, g.Description, g.Rating,
	)
	return mapConstraint(err)
}

func (r *gamesRepo) UpdateGame(ctx context.Context, g domain.Game) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE games SET title = ?, alias = ?, link = ?, cover_image = ?,
		 description = ?, rating = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		g.Title, g.Alias, g.Link, g.CoverImage, g.Description, g.Rating, g.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *gamesRepo) DeleteGame(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *gamesRepo) TagsForGames(ctx context.Context, gameIDs []string) (map[string][]domain.Tag, error) {
	out := make(map[string][]domain.Tag, len(gameIDs))
	if len(gameIDs) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(gameIDs)), ",")
	args := make([]any, len(gameIDs))
	for i, id := range gameIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT gt.game_id, t.id, t.name, t.created_at
		 FROM game_tags gt
		 JOIN tags t ON t.id = gt.tag_id
		 WHERE gt.game_id IN (`+placeholders+`)
		 ORDER BY t.name`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var gameID string
		var t domain.Tag
		if err := rows.Scan(&gameID, &t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		out[gameID] = append(out[gameID], t)
	}
	return out, rows.Err()
}

func (r *gamesRepo) SetGameTags(ctx context.Context, gameID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM game_tags WHERE game_id = ?`, gameID); err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO game_tags (game_id, tag_id) VALUES (?, ?)`,
			gameID, tagID); err != nil {
			return err
		}
	}
	return nil
}
