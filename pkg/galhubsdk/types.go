package galhubsdk

import "time"

// CaptchaResponse is returned by GET /api/captcha/generate. CaptchaText
// is the rendered challenge the user must echo back.
type CaptchaResponse struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaText string `json:"captcha_text"`
}

// CaptchaVerifyRequest consumes a challenge without starting a workflow.
type CaptchaVerifyRequest struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaText string `json:"captcha_text"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaText string `json:"captcha_text"`
}

type LoginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaText string `json:"captcha_text"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"` // always "Bearer"
	ExpiresIn   int          `json:"expires_in"` // seconds
}

type UserResponse struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type GameRequest struct {
	Title       string   `json:"title"`
	Alias       string   `json:"alias,omitempty"`
	Link        string   `json:"link,omitempty"`
	CoverImage  string   `json:"cover_image,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags,omitempty"`
}

type GameResponse struct {
	GameID      string        `json:"game_id"`
	Title       string        `json:"title"`
	Alias       string        `json:"alias,omitempty"`
	Link        string        `json:"link,omitempty"`
	CoverImage  string        `json:"cover_image,omitempty"`
	Description string        `json:"description,omitempty"`
	Rating      float64       `json:"rating"`
	Tags        []TagResponse `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// GameListResponse is the paginated games listing.
type GameListResponse struct {
	Games []GameResponse `json:"games"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
}

type TagRequest struct {
	Name string `json:"name"`
}

type TagResponse struct {
	TagID string `json:"tag_id"`
	Name  string `json:"name"`
}

type ReviewRequest struct {
	GameID  string `json:"game_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// ReviewUpdateRequest edits an existing review; the game binding is fixed.
type ReviewUpdateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type ReviewResponse struct {
	ReviewID  string    `json:"review_id"`
	GameID    string    `json:"game_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatsResponse carries the site-wide counters from GET /api/stats.
type StatsResponse struct {
	GameCount   int64 `json:"game_count"`
	UserCount   int64 `json:"user_count"`
	ReviewCount int64 `json:"review_count"`
}

// StatusResponse acknowledges an operation with no payload to return.
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
