package domain

import "time"

// Role is the coarse authorization tier attached to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string
	Username     string // stored lowercased
	Email        string // stored lowercased
	PasswordHash string // bcrypt encoded, never serialized outward
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
