package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jedyapps/dealdesk/internal/config"
	"github.com/jedyapps/dealdesk/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleClient drives the OAuth consent flow and resolves the resulting
// token into a verified Identity. The provider-side application registration
// restricts eligible accounts; no domain check happens here.
type GoogleClient struct {
	oauth       *oauth2.Config
	httpClient  *http.Client
	userinfoURL string
}

// googleUserinfo is the provider's profile assertion
type googleUserinfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// NewGoogleClient creates a new Google OAuth client
func NewGoogleClient(cfg *config.GoogleConfig) *GoogleClient {
	return &GoogleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userinfoURL: defaultUserinfoURL,
	}
}

// AuthCodeURL returns the consent page URL for the given anti-forgery state
func (c *GoogleClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades the callback authorization code for an access token
func (c *GoogleClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// FetchIdentity resolves the token into a normalized Identity via the
// userinfo endpoint. Login fails when the profile carries no email.
func (c *GoogleClient) FetchIdentity(ctx context.Context, token *oauth2.Token) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Error struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err == nil && errorResp.Error.Message != "" {
			return nil, fmt.Errorf("userinfo endpoint error (%d): %s", resp.StatusCode, errorResp.Error.Message)
		}
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var profile googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	if profile.Email == "" {
		return nil, fmt.Errorf("provider profile has no email address")
	}

	return &domain.Identity{
		ID:      profile.ID,
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
	}, nil
}
