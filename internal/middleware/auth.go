package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/ecosmart-shop/catalog-api/internal/config"
)

// APIKeyAuth middleware validates the key passed in the "api_key" header.
// It guards the admin routes only; shoppers are never authenticated.
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			if !validKey(cfg.APIKeys, apiKey) {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func validKey(keys []string, candidate string) bool {
	valid := false
	for _, k := range keys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(candidate)) == 1 {
			valid = true
		}
	}
	return valid
}
