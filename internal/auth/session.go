package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jedyapps/dealdesk/internal/config"
	"github.com/jedyapps/dealdesk/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// SessionCodec signs and verifies the session credential: an HMAC-SHA256 JWT
// carrying the full Identity, expiring TTL after issuance.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionCodec creates a codec from session configuration
func NewSessionCodec(cfg *config.SessionConfig) *SessionCodec {
	return &SessionCodec{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL(),
	}
}

// Issue signs a new session credential embedding the identity
func (c *SessionCodec) Issue(identity *domain.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    identity.ID,
		"email": identity.Email,
		"name":  identity.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}
	if identity.Picture != "" {
		claims["picture"] = identity.Picture
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify validates a session credential and returns the embedded identity.
// Returns ErrExpiredToken past expiry and ErrInvalidToken on a bad signature
// or malformed token.
func (c *SessionCodec) Verify(tokenString string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	identity := &domain.Identity{
		ID:      extractString(claims, "id"),
		Email:   extractString(claims, "email"),
		Name:    extractString(claims, "name"),
		Picture: extractString(claims, "picture"),
	}

	if identity.ID == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: missing identity claims", ErrInvalidToken)
	}

	return identity, nil
}

func extractString(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// SetSessionCookie writes the credential into a browser-inaccessible,
// SameSite-restricted cookie. Secure outside development so local HTTP
// still works.
func SetSessionCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.Session.TTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.App.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie client-side
func ClearSessionCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.App.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
}
