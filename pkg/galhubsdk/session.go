package galhubsdk

import (
	"context"
	"net/http"
)

// Session is an authenticated view of the API, bound to one access token.
// Tokens are not refreshed; when the session expires, log in again.
type Session struct {
	client      *Client
	accessToken string

	// User is the identity snapshot captured at register or login time.
	// Empty when the session was resumed from a bare token.
	User UserResponse
}

func newSession(client *Client, auth *AuthResponse) *Session {
	return &Session{
		client:      client,
		accessToken: auth.AccessToken,
		User:        auth.User,
	}
}

// Token returns the raw access token.
func (s *Session) Token() string { return s.accessToken }

// Me fetches the current identity from the server.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.client.do(ctx, http.MethodGet, "/api/users/me", s.accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword rotates the caller's own password.
func (s *Session) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return s.client.do(ctx, http.MethodPut, "/api/users/me/password", s.accessToken, req, nil)
}

// CreateReview posts a review for a game.
func (s *Session) CreateReview(ctx context.Context, req ReviewRequest) (*ReviewResponse, error) {
	var out ReviewResponse
	if err := s.client.do(ctx, http.MethodPost, "/api/reviews", s.accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReview edits one of the caller's reviews.
func (s *Session) UpdateReview(ctx context.Context, reviewID string, req ReviewUpdateRequest) (*ReviewResponse, error) {
	var out ReviewResponse
	if err := s.client.do(ctx, http.MethodPut, "/api/reviews/"+reviewID, s.accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReview removes one of the caller's reviews. Admin sessions may
// delete any review.
func (s *Session) DeleteReview(ctx context.Context, reviewID string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/reviews/"+reviewID, s.accessToken, nil, nil)
}

// UserReviews returns the reviews written by a user.
func (s *Session) UserReviews(ctx context.Context, userID string) ([]ReviewResponse, error) {
	var out []ReviewResponse
	if err := s.client.do(ctx, http.MethodGet, "/api/reviews/user/"+userID, s.accessToken, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
