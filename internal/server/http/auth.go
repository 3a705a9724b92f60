package http

import (
	"net/http"

	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/pkg/galhubsdk"
	"github.com/galhub/galhub/pkg/httpx"
)

type RegisterHandler struct {
	Identity *service.IdentityService
}

// ServeHTTP creates an account and returns a session token, so a fresh
// registration is immediately usable without a second login round trip.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req galhubsdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.Identity.Register(r.Context(), service.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		CaptchaID:   req.CaptchaID,
		CaptchaText: req.CaptchaText,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse(h.Identity, user, token))
}

type LoginHandler struct {
	Identity *service.IdentityService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req galhubsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.Identity.Login(r.Context(), service.LoginParams{
		Username:    req.Username,
		Password:    req.Password,
		CaptchaID:   req.CaptchaID,
		CaptchaText: req.CaptchaText,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse(h.Identity, user, token))
}

func authResponse(identity *service.IdentityService, user domain.User, token string) galhubsdk.AuthResponse {
	return galhubsdk.AuthResponse{
		User:        toUserResponse(user),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(identity.Tokens.Lifetime().Seconds()),
	}
}
