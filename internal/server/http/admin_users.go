package http

import (
	"net/http"

	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/pkg/galhubsdk"
	"github.com/galhub/galhub/pkg/httpx"
)

type ResetPasswordHandler struct {
	Identity *service.IdentityService
}

// ServeHTTP lets an admin set a new password for another account. The
// admin's own account is refused here and must use the change flow.
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	adminID := httpx.UserIDFromContext(ctx)
	if adminID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ReasonUnauthorized, "no access token provided")
		return
	}
	targetID := r.PathValue("id")

	var req galhubsdk.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Identity.ResetPassword(ctx, adminID, targetID, req.NewPassword); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, galhubsdk.StatusResponse{Status: "password reset"})
}
