package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jedyapps/dealdesk/internal/auth"
	"github.com/jedyapps/dealdesk/internal/config"
	"go.uber.org/zap"
)

// stateCookieName holds the anti-forgery state between the redirect to the
// consent page and the provider's callback
const stateCookieName = "oauth_state"

// AuthHandler drives the login flow and session lifecycle
type AuthHandler struct {
	google *auth.GoogleClient
	codec  *auth.SessionCodec
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(google *auth.GoogleClient, codec *auth.SessionCodec, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		google: google,
		codec:  codec,
		cfg:    cfg,
		logger: logger,
	}
}

// GoogleLogin starts the OAuth flow: plants a state cookie and redirects to
// the consent page
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.cfg.App.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusFound)
}

// GoogleCallback finishes the OAuth flow: verifies state, exchanges the code,
// resolves the identity and issues the session cookie. Every failure lands on
// the frontend's login page rather than a bare error body, since the browser
// is mid-redirect here.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.logger.Warn("oauth state mismatch", zap.Error(err))
		h.redirectToLogin(w, r)
		return
	}
	h.clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		h.logger.Warn("oauth callback without code",
			zap.String("error", r.URL.Query().Get("error")))
		h.redirectToLogin(w, r)
		return
	}

	token, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth code exchange failed", zap.Error(err))
		h.redirectToLogin(w, r)
		return
	}

	identity, err := h.google.FetchIdentity(r.Context(), token)
	if err != nil {
		h.logger.Error("failed to resolve identity", zap.Error(err))
		h.redirectToLogin(w, r)
		return
	}

	session, err := h.codec.Issue(identity)
	if err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))
		h.redirectToLogin(w, r)
		return
	}

	auth.SetSessionCookie(w, h.cfg, session)
	h.logger.Info("login completed",
		zap.String("user_id", identity.ID),
		zap.String("user_email", identity.Email),
	)

	http.Redirect(w, r, h.cfg.App.FrontendURL, http.StatusFound)
}

// Me returns the identity embedded in the current session
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": identity})
}

// Logout clears the session cookie. Always succeeds, logged in or not.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cfg)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.cfg.App.FrontendURL+"/login", http.StatusFound)
}

func (h *AuthHandler) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.App.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}
