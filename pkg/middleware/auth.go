package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/platinummonkey/menuboard/pkg/auth"
	"github.com/platinummonkey/menuboard/pkg/contextkeys"
	"github.com/platinummonkey/menuboard/pkg/httputil"
	"github.com/platinummonkey/menuboard/pkg/observability"
)

// TokenVerifier resolves a signed token to a user id
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthMiddleware rejects requests without a valid identity token
type AuthMiddleware struct {
	verifier TokenVerifier
	metrics  *observability.Metrics
}

// NewAuthMiddleware creates a new authentication middleware.
// metrics may be nil.
func NewAuthMiddleware(verifier TokenVerifier, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		metrics:  metrics,
	}
}

// Handler wraps an HTTP handler with authentication.
// The wrapped handler only runs for a verified token.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractToken(r.Header.Get("Authorization"))
		if !ok {
			m.reject(w, r, "missing", "Access denied. No token provided.")
			return
		}

		userID, err := m.verifier.Verify(token)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, auth.ErrTokenExpired) {
				reason = "expired"
			}
			m.reject(w, r, reason, "Invalid or expired token")
			return
		}

		ctx := contextkeys.WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HandlerFunc is Handler for plain functions
func (m *AuthMiddleware) HandlerFunc(next http.HandlerFunc) http.Handler {
	return m.Handler(next)
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, reason, message string) {
	if m.metrics != nil {
		m.metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	}
	observability.FromContext(r.Context()).
		WithField("reason", reason).
		Debug("request rejected by token gate")
	httputil.WriteUnauthorized(w, message)
}

// extractToken accepts "Bearer <token>" with any scheme casing, or a bare token
func extractToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	parts := strings.Fields(header)
	switch len(parts) {
	case 1:
		if strings.EqualFold(parts[0], "bearer") {
			return "", false
		}
		return parts[0], true
	case 2:
		if !strings.EqualFold(parts[0], "bearer") {
			return "", false
		}
		return parts[1], true
	default:
		return "", false
	}
}

// UserIDFromContext returns the authenticated user id set by AuthMiddleware
func UserIDFromContext(r *http.Request) (int64, bool) {
	return contextkeys.GetUserID(r.Context())
}
