package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jedyapps/dealdesk/internal/auth"
	"github.com/jedyapps/dealdesk/internal/config"
	"github.com/jedyapps/dealdesk/internal/domain"
	"github.com/jedyapps/dealdesk/internal/http/handler"
	"github.com/jedyapps/dealdesk/internal/http/middleware"
	"github.com/jedyapps/dealdesk/internal/http/router"
	"github.com/jedyapps/dealdesk/internal/hubspot"
	"github.com/jedyapps/dealdesk/internal/service"
	"github.com/jedyapps/dealdesk/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestAPI wires the full router in sample-data mode
func newTestAPI(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Name:        "DealDesk API",
			Environment: "development",
			Port:        3001,
			FrontendURL: "http://localhost:5173",
		},
		Google: config.GoogleConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			CallbackURL:  "http://localhost:3001/api/auth/google/callback",
		},
		HubSpot: config.HubSpotConfig{APIKey: "", BaseURL: "http://127.0.0.1:1"},
		Session: config.SessionConfig{
			Secret:     "test-secret-at-least-32-bytes-long!!",
			TTLDays:    7,
			CookieName: "auth_token",
		},
		CORS: config.CORSConfig{
			AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	log := zap.NewNop()
	crmClient := hubspot.NewClient(&cfg.HubSpot, log)
	dealService := service.NewDealService(
		crmClient,
		hubspot.NewStageCache(crmClient, log),
		hubspot.NewOwnerCache(crmClient, log),
		&cfg.HubSpot,
		log,
	)

	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	googleClient := auth.NewGoogleClient(&cfg.Google)
	sessionCodec := auth.NewSessionCodec(&cfg.Session)
	authHandler := handler.NewAuthHandler(googleClient, sessionCodec, cfg, log)
	dealHandler := handler.NewDealHandler(dealService, log)

	rt := router.NewRouter(cfg, log, authMiddleware, rateLimiter, authHandler, dealHandler, dealService)
	return rt.Setup(), cfg
}

func sessionCookie(t *testing.T, cfg *config.Config) *http.Cookie {
	t.Helper()
	codec := auth.NewSessionCodec(&cfg.Session)
	token, err := codec.Issue(&domain.Identity{
		ID:    "108374950112",
		Email: "sarah@example.com",
		Name:  "Sarah Chen",
	})
	require.NoError(t, err)
	return &http.Cookie{Name: cfg.Session.CookieName, Value: token}
}

func TestHealth_ReportsSampleData(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["sampleData"])
}

func TestListDeals_RequiresSession(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/deals", nil)
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var apiErr domain.APIError
	require.NoError(t, json.NewDecoder(w.Body).Decode(&apiErr))
	assert.Equal(t, domain.ReasonMissingCredential, apiErr.Detail)
}

func TestListDeals_SampleModeWithSession(t *testing.T) {
	api, cfg := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/deals", nil)
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.DealListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Nil(t, resp.PortalID)
	assert.Equal(t, service.SampleDeals(), resp.Deals)
}

func TestBoard_GroupsSampleDeals(t *testing.T) {
	api, cfg := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/deals/board", nil)
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var board view.Board
	require.NoError(t, json.NewDecoder(w.Body).Decode(&board))
	assert.Equal(t, len(service.SampleDeals()), board.Total)
	require.NotEmpty(t, board.Groups)
	for i := 1; i < len(board.Groups); i++ {
		assert.GreaterOrEqual(t, board.Groups[i-1].StageOrder, board.Groups[i].StageOrder)
	}
	assert.Equal(t, 0, board.Cursor.Index)
	assert.False(t, board.Cursor.HasPrev)
	assert.True(t, board.Cursor.HasNext)
}

func TestBoard_CursorFollowsIndexParam(t *testing.T) {
	api, cfg := newTestAPI(t)
	total := len(service.SampleDeals())

	req := httptest.NewRequest(http.MethodGet, "/api/deals/board?index=2", nil)
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var board view.Board
	require.NoError(t, json.NewDecoder(w.Body).Decode(&board))
	assert.Equal(t, view.Cursor{Index: 2, Total: total, HasPrev: true, HasNext: true}, board.Cursor)
}

func TestBoard_CursorClampedToLastDeal(t *testing.T) {
	api, cfg := newTestAPI(t)
	total := len(service.SampleDeals())

	req := httptest.NewRequest(http.MethodGet, "/api/deals/board?index=99", nil)
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var board view.Board
	require.NoError(t, json.NewDecoder(w.Body).Decode(&board))
	assert.Equal(t, total-1, board.Cursor.Index)
	assert.True(t, board.Cursor.HasPrev)
	assert.False(t, board.Cursor.HasNext)
}

func TestRemoveTag_SampleMode(t *testing.T) {
	api, cfg := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/deals/1/remove-tag", nil)
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.MutationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
}

func TestUpdateSummary_ValidationError(t *testing.T) {
	api, cfg := newTestAPI(t)

	oversized := strings.Repeat("x", 5001)
	body, err := json.Marshal(domain.UpdateSummaryRequest{TransferSummary: oversized})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/deals/1/summary", strings.NewReader(string(body)))
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr domain.APIError
	require.NoError(t, json.NewDecoder(w.Body).Decode(&apiErr))
	assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
	assert.Contains(t, apiErr.Errors, "transferSummary")
}

func TestUpdateSummary_SampleMode(t *testing.T) {
	api, cfg := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/deals/1/summary", strings.NewReader(`{"transferSummary":"Short and sweet"}`))
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.MutationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
}

func TestGoogleLogin_RedirectsWithStateCookie(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "accounts.google.com")
	assert.Contains(t, location, "state=")

	var stateCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "oauth_state" {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	assert.NotEmpty(t, stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)
	assert.Contains(t, location, stateCookie.Value)
}

func TestGoogleCallback_StateMismatchRedirectsToLogin(t *testing.T) {
	api, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?state=forged&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "genuine"})
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:5173/login", w.Header().Get("Location"))
}

func TestMe_ReturnsSessionIdentity(t *testing.T) {
	api, cfg := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		User domain.Identity `json:"user"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "sarah@example.com", body.User.Email)
}

func TestLogout_ClearsCookie(t *testing.T) {
	api, cfg := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(sessionCookie(t, cfg))
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var cleared bool
	for _, c := range cookies {
		if c.Name == cfg.Session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
