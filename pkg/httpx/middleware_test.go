package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/galhub/galhub/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T) *jwtx.HS256 {
	t.Helper()
	s, err := jwtx.NewHS256([]byte("middleware-test-secret"))
	require.NoError(t, err)
	return s
}

func signToken(t *testing.T, s *jwtx.HS256, sub, username string, ttl time.Duration) string {
	t.Helper()
	raw, err := s.Sign(jwtx.NewSessionClaims(sub, username, ttl, time.Now().UTC()))
	require.NoError(t, err)
	return raw
}

func okHandler(t *testing.T, sawUser *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawUser = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAuthnMiddleware(t *testing.T) {
	s := newSigner(t)

	var sawUser string
	h := Chain(okHandler(t, &sawUser), AuthnMiddleware(s))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, ReasonUnauthorized, decodeError(t, rec).Error)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("malformed scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, ReasonUnauthorized, decodeError(t, rec).Error)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, s, "u1", "alice", -time.Minute))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		sawUser = ""
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, s, "u1", "alice", time.Hour))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u1", sawUser)
	})
}

func TestRequireRole(t *testing.T) {
	s := newSigner(t)

	roles := map[string]string{"admin-1": "admin", "user-1": "user"}
	lookup := func(_ context.Context, id string) (string, bool, error) {
		if id == "boom" {
			return "", false, errors.New("db down")
		}
		role, ok := roles[id]
		return role, ok, nil
	}

	var sawUser string
	h := Chain(okHandler(t, &sawUser),
		AuthnMiddleware(s),
		RequireRole("admin", lookup),
	)

	do := func(sub string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, s, sub, sub, time.Hour))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("admin passes", func(t *testing.T) {
		rec := do("admin-1")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin with valid token gets 403", func(t *testing.T) {
		rec := do("user-1")
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, ReasonForbidden, decodeError(t, rec).Error)
	})

	t.Run("deleted identity gets 401", func(t *testing.T) {
		rec := do("ghost")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("lookup failure gets opaque 500", func(t *testing.T) {
		rec := do("boom")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeError(t, rec)
		require.Equal(t, ReasonServerError, resp.Error)
		require.NotContains(t, resp.Message, "db down")
	})

	t.Run("no authn middleware means 401", func(t *testing.T) {
		bare := Chain(okHandler(t, &sawUser), RequireRole("admin", lookup))
		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	var sawUser string
	h := Chain(okHandler(t, &sawUser), CORS([]string{"http://localhost:3000"}))

	t.Run("allowed origin gets headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "GET, POST, PUT, DELETE", rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("same-origin request untouched", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}), Recover())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	require.Equal(t, ReasonServerError, resp.Error)
	require.NotContains(t, resp.Message, "kaboom")
}
