package domain

import "time"

type Game struct {
	ID          string
	Title       string
	Alias       string
	Link        string
	CoverImage  string
	Description string
	Rating      float64 // editorial rating 0-10, distinct from review scores
	Tags        []Tag
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
