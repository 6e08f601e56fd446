package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/blog-backend/internal/auth"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserID(r.Context())
	if TokenRejected(r.Context()) {
		uid = "rejected"
	}
	_, _ = w.Write([]byte(uid))
}

func newGuard(t *testing.T) (*AuthMiddleware, *auth.TokenManager) {
	t.Helper()
	tm := auth.NewTokenManager("mw-secret", "blog-backend", time.Hour)
	return NewAuthMiddleware(tm), tm
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRequire(t *testing.T) {
	guard, tm := newGuard(t)
	valid, _, err := tm.Issue("user-1")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
		wantError  string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "user-1", ""},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "user-1", ""},
		{"missing header", "", http.StatusForbidden, "", MsgAccessDenied},
		{"scheme only", "Bearer ", http.StatusForbidden, "", MsgAccessDenied},
		{"wrong scheme", "Basic abc", http.StatusForbidden, "", MsgAccessDenied},
		{"garbage token", "Bearer not-a-jwt", http.StatusForbidden, "", MsgInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			guard.Require(http.HandlerFunc(echoUser)).ServeHTTP(rr, r)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorBody(t, rr)["error"])
				return
			}
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestRequire_OtherSecretRejected(t *testing.T) {
	guard, _ := newGuard(t)
	other := auth.NewTokenManager("someone-else", "blog-backend", time.Hour)
	tok, _, err := other.Issue("user-1")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	guard.Require(http.HandlerFunc(echoUser)).ServeHTTP(rr, r)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, MsgInvalidToken, errorBody(t, rr)["error"])
}

func TestOptional(t *testing.T) {
	guard, tm := newGuard(t)
	valid, _, err := tm.Issue("user-2")
	require.NoError(t, err)

	for header, want := range map[string]string{
		"":                "",
		"Bearer " + valid: "user-2",
		"Bearer tampered": "rejected",
	} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		guard.Optional(http.HandlerFunc(echoUser)).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, want, rr.Body.String())
	}
}
