package galhubsdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to the GalHub API. Unauthenticated operations live on the
// Client; Register and Login return a Session for the rest.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GenerateCaptcha requests a fresh challenge.
func (c *Client) GenerateCaptcha(ctx context.Context) (*CaptchaResponse, error) {
	var out CaptchaResponse
	if err := c.do(ctx, http.MethodGet, "/api/captcha/generate", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyCaptcha consumes a challenge without starting a workflow.
func (c *Client) VerifyCaptcha(ctx context.Context, req CaptchaVerifyRequest) error {
	return c.do(ctx, http.MethodPost, "/api/captcha/verify", "", req, nil)
}

// Register creates an account and returns the authenticated session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/register", "", req, &out); err != nil {
		return nil, err
	}
	return newSession(c, &out), nil
}

// Login authenticates with username and password and returns the session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", "", req, &out); err != nil {
		return nil, err
	}
	return newSession(c, &out), nil
}

// SessionFromToken resumes a session from a previously issued token.
func (c *Client) SessionFromToken(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// ListGames returns one page of the catalogue. Zero page and limit select
// the server defaults; search may be empty.
func (c *Client) ListGames(ctx context.Context, page, limit int, search string) (*GameListResponse, error) {
	path := fmt.Sprintf("/api/games?page=%d&limit=%d", page, limit)
	if search != "" {
		path += "&search=" + queryEscape(search)
	}
	var out GameListResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestGames returns the most recently added games.
func (c *Client) LatestGames(ctx context.Context, limit int) ([]GameResponse, error) {
	var out []GameResponse
	path := fmt.Sprintf("/api/games/latest?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PopularGames returns games ordered by review count.
func (c *Client) PopularGames(ctx context.Context, limit int) ([]GameResponse, error) {
	var out []GameResponse
	path := fmt.Sprintf("/api/games/popular?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetGame returns one game with its tags.
func (c *Client) GetGame(ctx context.Context, gameID string) (*GameResponse, error) {
	var out GameResponse
	if err := c.do(ctx, http.MethodGet, "/api/games/"+gameID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTags returns all tags.
func (c *Client) ListTags(ctx context.Context) ([]TagResponse, error) {
	var out []TagResponse
	if err := c.do(ctx, http.MethodGet, "/api/tags", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GameReviews returns a game's reviews, newest first.
func (c *Client) GameReviews(ctx context.Context, gameID string) ([]ReviewResponse, error) {
	var out []ReviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/reviews/game/"+gameID, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns the site-wide game, user and review counts.
func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	var out StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/stats", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez hits the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/livez", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Readyz hits the readiness probe.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
