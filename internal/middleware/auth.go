package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/blog-backend/internal/api/httpx"
	"github.com/baharkarakas/blog-backend/internal/metrics"
)

const (
	MsgAccessDenied = "Access denied"
	MsgInvalidToken = "Invalid or expired token"
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthMiddleware struct {
	tv TokenVerifier
}

func NewAuthMiddleware(tv TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tv: tv}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(ah) < len("Bearer ") || !strings.EqualFold(ah[:len("Bearer ")], "bearer ") {
		return ""
	}
	return strings.TrimSpace(ah[len("Bearer "):])
}

// Require rejects requests without a valid token with 403 and otherwise
// attaches the caller's user id to the request context.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			metrics.AuthFailures.WithLabelValues("missing_token").Inc()
			httpx.WriteError(w, http.StatusForbidden, "access_denied", MsgAccessDenied, nil)
			return
		}
		uid, err := m.tv.Verify(token)
		if err != nil {
			metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
			slog.DebugContext(r.Context(), "token rejected", "err", err, "request_id", RequestIDFrom(r.Context()))
			httpx.WriteError(w, http.StatusForbidden, "invalid_token", MsgInvalidToken, nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
	})
}

// Optional attaches the caller's identity when a valid token is present.
// Requests with a bad token go through anonymously, marked so handlers that
// need an identity can answer with MsgInvalidToken.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if uid, err := m.tv.Verify(token); err == nil {
				r = r.WithContext(WithUserID(r.Context(), uid))
			} else {
				r = r.WithContext(withRejectedToken(r.Context()))
			}
		}
		next.ServeHTTP(w, r)
	})
}
