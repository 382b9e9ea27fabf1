package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/jedyapps/dealdesk/internal/config"
	"go.uber.org/zap"
)

// CORS returns a CORS middleware configured from the application config.
// The frontend origin is always allowed; the session cookie means requests
// arrive credentialed, so a wildcard would break the browser handshake.
func CORS(cfg *config.CORSConfig, frontendURL, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(cfg.AllowedOrigins)+1)
	if frontendURL != "" {
		origins = append(origins, frontendURL)
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin != frontendURL {
			origins = append(origins, origin)
		}
	}

	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if len(origins) > 0 {
		options.AllowedOrigins = origins
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", origins))
	} else if environment == "development" || environment == "local" || environment == "" {
		options.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return origin != ""
		}
		logger.Info("CORS configured to allow all origins in development mode")
	} else {
		// In production, if no origins configured, explicitly deny all
		// Note: We must use AllowOriginFunc because empty AllowedOrigins defaults to "*"
		options.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return false
		}
		logger.Warn("CORS configured with no allowed origins - all cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}
