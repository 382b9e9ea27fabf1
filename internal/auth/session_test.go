package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jedyapps/dealdesk/internal/auth"
	"github.com/jedyapps/dealdesk/internal/config"
	"github.com/jedyapps/dealdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionConfig() *config.SessionConfig {
	return &config.SessionConfig{
		Secret:     "test-secret-at-least-32-bytes-long!!",
		TTLDays:    7,
		CookieName: "auth_token",
	}
}

func testIdentity() *domain.Identity {
	return &domain.Identity{
		ID:      "108374950112",
		Email:   "sarah@example.com",
		Name:    "Sarah Chen",
		Picture: "https://lh3.googleusercontent.com/a/photo",
	}
}

func TestSessionCodec_IssueAndVerify(t *testing.T) {
	codec := auth.NewSessionCodec(testSessionConfig())

	token, err := codec.Issue(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "108374950112", identity.ID)
	assert.Equal(t, "sarah@example.com", identity.Email)
	assert.Equal(t, "Sarah Chen", identity.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/photo", identity.Picture)
}

func TestSessionCodec_VerifyRejectsWrongSecret(t *testing.T) {
	codec := auth.NewSessionCodec(testSessionConfig())
	token, err := codec.Issue(testIdentity())
	require.NoError(t, err)

	otherCfg := testSessionConfig()
	otherCfg.Secret = "a-completely-different-signing-secret"
	other := auth.NewSessionCodec(otherCfg)

	_, err = other.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSessionCodec_VerifyRejectsGarbage(t *testing.T) {
	codec := auth.NewSessionCodec(testSessionConfig())

	_, err := codec.Verify("not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSessionCodec_VerifyRejectsExpired(t *testing.T) {
	cfg := testSessionConfig()
	codec := auth.NewSessionCodec(cfg)

	// Hand-roll an already expired token with the same secret
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    "108374950112",
		"email": "sarah@example.com",
		"name":  "Sarah Chen",
		"iat":   now.Add(-8 * 24 * time.Hour).Unix(),
		"exp":   now.Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = codec.Verify(expired)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestSessionCodec_VerifyRejectsUnsignedAlg(t *testing.T) {
	cfg := testSessionConfig()
	codec := auth.NewSessionCodec(cfg)

	claims := jwt.MapClaims{
		"id":    "108374950112",
		"email": "sarah@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(unsigned)
	assert.Error(t, err)
}

func TestSessionCodec_VerifyRejectsMissingIdentityClaims(t *testing.T) {
	cfg := testSessionConfig()
	codec := auth.NewSessionCodec(cfg)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	anonymous, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = codec.Verify(anonymous)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
