package http

import (
	"errors"
	"net/http"

	"github.com/galhub/galhub/internal/server/captcha"
	"github.com/galhub/galhub/pkg/galhubsdk"
	"github.com/galhub/galhub/pkg/httpx"
	"github.com/galhub/galhub/pkg/slogx"
)

type CaptchaGenerateHandler struct {
	Challenges *captcha.Store
}

// ServeHTTP issues a fresh challenge. The rendered text goes out to the
// client; only the lowercased answer stays server-side.
func (h *CaptchaGenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	text, err := captcha.NewText()
	if err != nil {
		slogx.FromContext(r.Context()).Error("generate captcha text", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ReasonServerError, "internal server error")
		return
	}

	id := h.Challenges.Create(text)
	httpx.WriteJSON(w, http.StatusOK, galhubsdk.CaptchaResponse{
		CaptchaID:   id,
		CaptchaText: text,
	})
}

type CaptchaVerifyHandler struct {
	Challenges *captcha.Store
}

// ServeHTTP consumes a challenge outside of a workflow. The challenge is
// burned on every outcome except an unknown id.
func (h *CaptchaVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req galhubsdk.CaptchaVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CaptchaID == "" || req.CaptchaText == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonInvalidCaptcha, "captcha verification failed")
		return
	}

	switch err := h.Challenges.Verify(req.CaptchaID, req.CaptchaText); {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, galhubsdk.StatusResponse{Status: "ok"})
	case errors.Is(err, captcha.ErrExpired):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonCaptchaExpired, "captcha has expired, request a new one")
	default:
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonInvalidCaptcha, "captcha verification failed")
	}
}
