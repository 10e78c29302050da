package middleware

import (
	"context"
	"net/http"
	"strings"

	"autoparts-storefront-api/internal/model"
	"autoparts-storefront-api/internal/service"
	"autoparts-storefront-api/pkg/apierror"
)

// SessionDataKey is the key for storing session data in request context.
const SessionDataKey contextKey = "session_data"

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Sessions service.SessionService
	APIKeys  []string
}

// NewAuthMiddleware creates an authentication middleware. Applied per route
// group; public storefront routes never pass through it. A session token in
// X-Token is checked first, then an API key in X-API-Key or a bearer header.
// NO GLOBAL STATE - the session service is passed via closure.
func NewAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Token")
			if token != "" && cfg.Sessions != nil {
				data, err := cfg.Sessions.Validate(r.Context(), token)
				if err != nil {
					writeError(w, apierror.Unauthorized("Sesión expirada o inválida."))
					return
				}

				ctx := context.WithValue(r.Context(), SessionDataKey, data)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					apiKey = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			if apiKey == "" {
				writeError(w, apierror.Unauthorized("Authentication required. Use X-Token or X-API-Key header."))
				return
			}

			if !isValidKey(apiKey, cfg.APIKeys) {
				writeError(w, apierror.Unauthorized("Invalid API key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}

// isValidKey checks if the provided key is in the valid keys list.
func isValidKey(key string, validKeys []string) bool {
	for _, valid := range validKeys {
		if key == valid {
			return true
		}
	}
	return false
}

// GetSessionFromContext retrieves session data from request context.
func GetSessionFromContext(ctx context.Context) *model.SessionData {
	if data, ok := ctx.Value(SessionDataKey).(*model.SessionData); ok {
		return data
	}
	return nil
}
