package galhubsdk

import (
	"context"
	"net/http"
)

// Admin operations. The server enforces the admin role on every call;
// a session holding a regular user token gets a forbidden APIError.

// CreateGame adds a game to the catalogue.
func (s *Session) CreateGame(ctx context.Context, req GameRequest) (*GameResponse, error) {
	var out GameResponse
	if err := s.client.do(ctx, http.MethodPost, "/api/admin/games", s.accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateGame replaces a game's fields and tag set.
func (s *Session) UpdateGame(ctx context.Context, gameID string, req GameRequest) (*GameResponse, error) {
	var out GameResponse
	if err := s.client.do(ctx, http.MethodPut, "/api/admin/games/"+gameID, s.accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGame removes a game along with its reviews and tag links.
func (s *Session) DeleteGame(ctx context.Context, gameID string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/admin/games/"+gameID, s.accessToken, nil, nil)
}

// CreateTag adds a named tag.
func (s *Session) CreateTag(ctx context.Context, req TagRequest) (*TagResponse, error) {
	var out TagResponse
	if err := s.client.do(ctx, http.MethodPost, "/api/admin/tags", s.accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetUserPassword sets a new password for another user without knowing
// the old one. Admins cannot reset their own password this way.
func (s *Session) ResetUserPassword(ctx context.Context, userID string, req ResetPasswordRequest) error {
	return s.client.do(ctx, http.MethodPut, "/api/admin/users/"+userID+"/password", s.accessToken, req, nil)
}
