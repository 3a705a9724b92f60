package sqlite

import (
	"context"
	"database/sql"

	"github.com/galhub/galhub/internal/server/domain"
)

type reviewsRepo struct {
	db dbtx
}

const reviewColumns = `r.id, r.game_id, r.user_id, u.username, r.rating, r.comment, r.created_at, r.updated_at`

func scanReview(scan func(dest ...any) error) (domain.Review, error) {
	var rv domain.Review
	err := scan(&rv.ID, &rv.GameID, &rv.UserID, &rv.Username,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}

func collectReviews(rows *sql.Rows) ([]domain.Review, error) {
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows.Scan)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *reviewsRepo) GetReviewByID(ctx context.Context, id string) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews r JOIN users u ON u.id = r.user_id
		 WHERE r.id = ?`, id).Scan)
	if err != nil {
		return domain.Review{}, mapNotFound(err)
	}
	return rv, nil
}

func (r *reviewsRepo) GetReviewByGameAndUser(ctx context.Context, gameID, userID string) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews r JOIN users u ON u.id = r.user_id
		 WHERE r.game_id = ? AND r.user_id = ?`, gameID, userID).Scan)
	if err != nil {
		return domain.Review{}, mapNotFound(err)
	}
	return rv, nil
}

func (r *reviewsRepo) ListReviewsByGame(ctx context.Context, gameID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews r JOIN users u ON u.id = r.user_id
		 WHERE r.game_id = ? ORDER BY r.created_at DESC`, gameID)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

func (r *reviewsRepo) ListReviewsByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews r JOIN users u ON u.id = r.user_id
		 WHERE r.user_id = ? ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

func (r *reviewsRepo) CreateReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (id, game_id, user_id, rating, comment)
		 VALUES (?, ?, ?, ?, ?)`,
		rv.ID, rv.GameID, rv.UserID, rv.Rating, rv.Comment,
	)
	return mapConstraint(err)
}

func (r *reviewsRepo) UpdateReview(ctx context.Context, id string, rating int, comment string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET rating = ?, comment = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, rating, comment, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *reviewsRepo) CountReviews(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count)
	return count, err
}

func (r *reviewsRepo) DeleteReview(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
