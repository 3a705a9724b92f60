package http

import (
	"net/http"

	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/pkg/galhubsdk"
	"github.com/galhub/galhub/pkg/httpx"
)

type MeHandler struct {
	Identity *service.IdentityService
}

// ServeHTTP returns the caller's identity. The profile is loaded fresh
// from the store, so role changes show up without reissuing the token.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ReasonUnauthorized, "no access token provided")
		return
	}

	user, err := h.Identity.GetUserByID(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type ChangePasswordHandler struct {
	Identity *service.IdentityService
}

func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ReasonUnauthorized, "no access token provided")
		return
	}

	var req galhubsdk.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Identity.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, galhubsdk.StatusResponse{Status: "password changed"})
}
