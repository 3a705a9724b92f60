package httpx

import (
	"encoding/json"
	"net/http"
)

// Stable machine-readable reason codes for error responses. These are the
// wire contract; the human-facing message may change freely.
const (
	ReasonValidation         = "validation_error"
	ReasonConflict           = "conflict"
	ReasonInvalidCaptcha     = "invalid_captcha"
	ReasonCaptchaExpired     = "captcha_expired"
	ReasonUnauthorized       = "unauthorized"
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonForbidden          = "forbidden"
	ReasonNotFound           = "not_found"
	ReasonServerError        = "server_error"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code. Responses
// carrying tokens must not be cached, so Cache-Control is always set.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the uniform error envelope.
func WriteError(w http.ResponseWriter, code int, reason, message string) {
	WriteJSON(w, code, ErrorResponse{Error: reason, Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
