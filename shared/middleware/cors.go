package middleware

import (
	"net/http"
	"strconv"

	"github.com/wanyos2005/carserve-backend/shared/config"
)

// CORSMiddleware creates a CORS middleware
func CORSMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept, Origin")
			w.Header().Set("Access-Control-Max-Age", corsMaxAge())

			// Handle preflight (OPTIONS) requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// corsMaxAge gets the CORS max age from the environment or returns the default
func corsMaxAge() string {
	value := config.GetEnvOrDefault("CORS_MAX_AGE", "86400")
	if _, err := strconv.Atoi(value); err != nil {
		return "86400"
	}
	return value
}
