package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// CORS creates a CORS middleware for the dashboard origins.
// A "*" entry allows any origin; credentials are then disabled since browsers
// reject a wildcard origin on credentialed requests.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(allowedOrigins, "*")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})

	return c.Handler
}
