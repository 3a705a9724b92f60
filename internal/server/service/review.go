package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/internal/server/store"
	"github.com/galhub/galhub/pkg/idx"
)

const reviewCommentMaxLen = 2000

var ErrAlreadyReviewed = errors.New("service: user already reviewed this game")

// ReviewService covers user reviews on games. One review per user per
// game; authors may only touch their own reviews.
type ReviewService struct {
	Store store.Store
}

type ReviewParams struct {
	Rating  int
	Comment string
}

func (p *ReviewParams) validate() error {
	p.Comment = strings.TrimSpace(p.Comment)

	if p.Rating < 1 || p.Rating > 5 {
		return invalid("rating", "must be between 1 and 5")
	}
	if len(p.Comment) > reviewCommentMaxLen {
		return invalid("comment", "must be at most 2000 characters")
	}
	return nil
}

// CreateReview records a user's review of a game. The game must exist
// and the user must not have reviewed it already.
func (s *ReviewService) CreateReview(ctx context.Context, userID, gameID string, p ReviewParams) (domain.Review, error) {
	if err := p.validate(); err != nil {
		return domain.Review{}, err
	}

	if _, err := s.Store.Games().GetGameByID(ctx, gameID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, fmt.Errorf("check game: %w", err)
	}

	// Cheap pre-check so the common duplicate case skips the insert; the
	// unique index below remains the arbiter under races.
	if _, err := s.Store.Reviews().GetReviewByGameAndUser(ctx, gameID, userID); err == nil {
		return domain.Review{}, ErrAlreadyReviewed
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Review{}, fmt.Errorf("check existing review: %w", err)
	}

	review := domain.Review{
		ID:      idx.New().String(),
		GameID:  gameID,
		UserID:  userID,
		Rating:  p.Rating,
		Comment: p.Comment,
	}
	if err := s.Store.Reviews().CreateReview(ctx, review); err != nil {
		// Unique (game_id, user_id) catches the duplicate race.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Review{}, ErrAlreadyReviewed
		}
		return domain.Review{}, fmt.Errorf("create review: %w", err)
	}

	return s.getReview(ctx, review.ID)
}

// ListByGame returns a game's reviews, newest first, with usernames.
func (s *ReviewService) ListByGame(ctx context.Context, gameID string) ([]domain.Review, error) {
	reviews, err := s.Store.Reviews().ListReviewsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListByUser returns all reviews written by a user.
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	reviews, err := s.Store.Reviews().ListReviewsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return reviews, nil
}

// UpdateReview edits a review. Only the author may edit it.
func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID string, p ReviewParams) (domain.Review, error) {
	if err := p.validate(); err != nil {
		return domain.Review{}, err
	}

	review, err := s.Store.Reviews().GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, fmt.Errorf("get review: %w", err)
	}
	if review.UserID != userID {
		return domain.Review{}, ErrForbidden
	}

	if err := s.Store.Reviews().UpdateReview(ctx, reviewID, p.Rating, p.Comment); err != nil {
		return domain.Review{}, fmt.Errorf("update review: %w", err)
	}

	return s.getReview(ctx, reviewID)
}

// DeleteReview removes a review. The author or an admin may delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string, isAdmin bool) error {
	review, err := s.Store.Reviews().GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get review: %w", err)
	}
	if review.UserID != userID && !isAdmin {
		return ErrForbidden
	}

	if err := s.Store.Reviews().DeleteReview(ctx, reviewID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *ReviewService) getReview(ctx context.Context, id string) (domain.Review, error) {
	review, err := s.Store.Reviews().GetReviewByID(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("reload review: %w", err)
	}
	return review, nil
}
