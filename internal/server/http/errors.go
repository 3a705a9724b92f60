package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/pkg/httpx"
	"github.com/galhub/galhub/pkg/slogx"
)

// decodeJSON reads a JSON request body into dst, rejecting unknown
// fields. A false return means the error response has been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonValidation, "request body is not valid JSON")
		return false
	}
	return true
}

// writeServiceError maps workflow errors onto the uniform error envelope.
// Anything unmapped is logged and reported as an opaque server error.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonValidation, verr.Error())

	// Duplicates report 400 rather than 409: the error code carries the
	// semantics and browser clients treat both the same way.
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonConflict, "username is already taken")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonConflict, "email is already registered")
	case errors.Is(err, service.ErrAlreadyReviewed):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonConflict, "you have already reviewed this game")

	case errors.Is(err, service.ErrInvalidCaptcha):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonInvalidCaptcha, "captcha verification failed")
	case errors.Is(err, service.ErrCaptchaExpired):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonCaptchaExpired, "captcha has expired, request a new one")

	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ReasonInvalidCredentials, "invalid username or password")

	case errors.Is(err, service.ErrSamePassword):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonValidation, "new password must differ from the current password")
	case errors.Is(err, service.ErrSelfReset):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonConflict, "use the password change endpoint for your own account")

	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.ReasonNotFound, "resource not found")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, httpx.ReasonForbidden, "you do not have access to this resource")

	default:
		slogx.FromContext(ctx).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ReasonServerError, "internal server error")
	}
}
