package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jedyapps/dealdesk/internal/config"
	"github.com/jedyapps/dealdesk/internal/domain"
	"go.uber.org/zap"
)

// Middleware guards protected routes behind a valid session credential
type Middleware struct {
	codec      *SessionCodec
	cookieName string
	logger     *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config, logger *zap.Logger) *Middleware {
	return &Middleware{
		codec:      NewSessionCodec(&cfg.Session),
		cookieName: cfg.Session.CookieName,
		logger:     logger,
	}
}

// Authenticate extracts the session cookie, verifies it, and attaches the
// resolved Identity to the request context. Verification is synchronous
// cryptographic work only; nothing here blocks on I/O.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil {
			m.respondUnauthorized(w, domain.ReasonMissingCredential)
			return
		}

		identity, err := m.codec.Verify(cookie.Value)
		if err != nil {
			reason := domain.ReasonInvalidCredential
			if errors.Is(err, ErrExpiredToken) {
				reason = domain.ReasonExpiredCredential
			}
			m.logger.Warn("session verification failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			m.respondUnauthorized(w, reason)
			return
		}

		ctx := WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) respondUnauthorized(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeUnauthorized,
		Title:  "Authentication required",
		Status: http.StatusUnauthorized,
		Detail: reason,
	})
}
