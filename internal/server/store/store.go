package store

import (
	"context"
	"errors"

	"github.com/galhub/galhub/internal/server/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Games() Games
	Tags() Tags
	Reviews() Reviews

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the store.
type Tx interface {
	Users() Users
	Games() Games
	Tags() Tags
	Reviews() Reviews
}

// Users is the credential store boundary. Uniqueness of username and email
// is enforced here (by schema constraint), which makes it the arbiter for
// concurrent registrations.
type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername looks up a user by normalized (lowercased) username.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail looks up a user by normalized (lowercased) email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateRole sets the role and bumps updated_at.
	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int64, error)
}

type Games interface {
	// GetGameByID returns a game without its tags.
	GetGameByID(ctx context.Context, id string) (domain.Game, error)

	// ListGames returns a page of games ordered by creation date (newest
	// first), optionally filtered by a title/alias substring search.
	ListGames(ctx context.Context, page, limit int, search string) ([]domain.Game, error)

	// CountGames returns the total matching the same filter as ListGames.
	CountGames(ctx context.Context, search string) (int64, error)

	// ListLatestGames returns the most recently added games.
	ListLatestGames(ctx context.Context, limit int) ([]domain.Game, error)

	// ListPopularGames orders games by review count.
	ListPopularGames(ctx context.Context, limit int) ([]domain.Game, error)

	CreateGame(ctx context.Context, g domain.Game) error
	UpdateGame(ctx context.Context, g domain.Game) error

	// DeleteGame cascades to game_tags and reviews (per schema).
	DeleteGame(ctx context.Context, id string) error

	// TagsForGames returns the tags of each listed game keyed by game id,
	// in one query to avoid N+1 lookups.
	TagsForGames(ctx context.Context, gameIDs []string) (map[string][]domain.Tag, error)

	// SetGameTags replaces the tag set attached to a game.
	SetGameTags(ctx context.Context, gameID string, tagIDs []string) error
}

type Tags interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)

	// GetTagByName looks a tag up by exact name.
	GetTagByName(ctx context.Context, name string) (domain.Tag, error)

	// CreateTag inserts a new tag. Returns ErrAlreadyExists for duplicates.
	CreateTag(ctx context.Context, t domain.Tag) error
}

type Reviews interface {
	GetReviewByID(ctx context.Context, id string) (domain.Review, error)

	// GetReviewByGameAndUser finds a user's review of a game. Serves as
	// the duplicate pre-check; the unique (game_id, user_id) index is the
	// arbiter under races.
	GetReviewByGameAndUser(ctx context.Context, gameID, userID string) (domain.Review, error)

	ListReviewsByGame(ctx context.Context, gameID string) ([]domain.Review, error)
	ListReviewsByUser(ctx context.Context, userID string) ([]domain.Review, error)

	CreateReview(ctx context.Context, r domain.Review) error
	UpdateReview(ctx context.Context, id string, rating int, comment string) error
	DeleteReview(ctx context.Context, id string) error

	// CountReviews returns the total number of reviews.
	CountReviews(ctx context.Context) (int64, error)
}
