package domain

import "time"

// Review is a user's score and comment for a game. One review per user per
// game, enforced by the store.
type Review struct {
	ID        string
	GameID    string
	UserID    string
	Username  string // joined from users for display, not stored on the row
	Rating    int    // 1-5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
