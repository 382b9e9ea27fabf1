package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedyapps/dealdesk/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Google    GoogleConfig
	HubSpot   HubSpotConfig
	Session   SessionConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// FrontendURL is the web client origin: the CORS allow-list entry and the
	// redirect target after a completed login.
	FrontendURL string
}

// GoogleConfig holds the OAuth application registration.
// The registration itself (internal app, workspace-restricted) is what limits
// eligible accounts; no domain allowlist is checked server-side.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// HubSpotConfig holds credentials for the CRM API.
type HubSpotConfig struct {
	// APIKey is the private app token. Empty or the placeholder value puts
	// the service into sample-data mode.
	APIKey string
	// BaseURL is overridable for tests; defaults to the public API.
	BaseURL string
	// ForceSampleData switches to the built-in dataset even with a key set.
	ForceSampleData bool
}

// SampleDataMode reports whether the service runs against the built-in
// sample dataset instead of the live CRM.
func (h *HubSpotConfig) SampleDataMode() bool {
	return h.ForceSampleData || h.APIKey == "" || h.APIKey == "YOUR_API_KEY_HERE"
}

// SessionConfig holds session credential settings.
type SessionConfig struct {
	// Secret signs the session JWT. Must be set outside development.
	Secret     string
	TTLDays    int
	CookieName string
}

// TTL returns the session lifetime as a duration.
func (s *SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLDays) * 24 * time.Hour
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	// "auto" uses environment in development, vault in staging/production
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout  int
	WriteTimeout int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	WhitelistIPs      []string
	WhitelistPaths    []string
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// This is a basic load that doesn't fetch secrets from vault;
// use LoadWithSecrets for full secret resolution.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Common alternate env names used by deployment manifests
	if cfg.Google.ClientID == "" {
		cfg.Google.ClientID = v.GetString("GOOGLE_CLIENT_ID")
	}
	if cfg.Google.ClientSecret == "" {
		cfg.Google.ClientSecret = v.GetString("GOOGLE_CLIENT_SECRET")
	}
	if cfg.Google.CallbackURL == "" {
		cfg.Google.CallbackURL = v.GetString("CALLBACK_URL")
	}
	if cfg.HubSpot.APIKey == "" {
		cfg.HubSpot.APIKey = v.GetString("HUBSPOT_API_KEY")
	}
	if cfg.App.FrontendURL == "" {
		cfg.App.FrontendURL = v.GetString("FRONTEND_URL")
	}
	if v.GetBool("USE_DUMMY_DATA") {
		cfg.HubSpot.ForceSampleData = true
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from the configured source.
// In development (or when secrets.source = "environment"), secrets come from env vars.
// In staging/production with USE_AZURE_KEY_VAULT=true, the HubSpot API key, the
// Google client secret and the session signing secret come from Azure Key Vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	logger.Info("Azure Key Vault enabled for secrets",
		zap.String("environment", cfg.App.Environment),
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	if apiKey, err := provider.GetSecretOrEnv(ctx, "HUBSPOT-API-KEY", "HUBSPOT_API_KEY"); err == nil && apiKey != "" {
		cfg.HubSpot.APIKey = apiKey
	}
	if clientSecret, err := provider.GetSecretOrEnv(ctx, "GOOGLE-CLIENT-SECRET", "GOOGLE_CLIENT_SECRET"); err == nil && clientSecret != "" {
		cfg.Google.ClientSecret = clientSecret
	}
	if sessionSecret, err := provider.GetSecretOrEnv(ctx, "SESSION-SECRET", "SESSION_SECRET"); err == nil && sessionSecret != "" {
		cfg.Session.Secret = sessionSecret
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "DealDesk API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 3001)
	v.SetDefault("app.frontendURL", "http://localhost:5173")

	// Google OAuth defaults (credentials always come from env/vault)
	v.SetDefault("google.clientID", "")
	v.SetDefault("google.clientSecret", "")
	v.SetDefault("google.callbackURL", "http://localhost:3001/api/auth/google/callback")

	// HubSpot defaults
	v.SetDefault("hubspot.apiKey", "")
	v.SetDefault("hubspot.baseURL", "https://api.hubapi.com")
	v.SetDefault("hubspot.forceSampleData", false)

	// Session defaults
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttlDays", 7)
	v.SetDefault("session.cookieName", "auth_token")

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300) // 5 minutes

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)

	// CORS defaults: the frontend origin is appended at router setup; the
	// session cookie requires credentialed requests.
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PATCH", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300) // 5 minutes

	// Security header defaults
	v.SetDefault("security.enableHSTS", false) // Enable in production with HTTPS
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 120)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/api/health"})
}
