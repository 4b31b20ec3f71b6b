package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wanyos2005/carserve-backend/shared/config"
	"github.com/wanyos2005/carserve-backend/shared/utils"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// JWTAuthConfig contains configuration for JWT authentication
type JWTAuthConfig struct {
	// Secret is the HS256 signing key shared with the user service
	Secret string
	// SkipPaths are path prefixes served without authentication
	SkipPaths []string
}

// NewJWTAuthConfigFromEnv reads the signing secret from JWT_SECRET
func NewJWTAuthConfigFromEnv() JWTAuthConfig {
	return JWTAuthConfig{
		Secret:    config.GetEnvOrDefault("JWT_SECRET", "dev-secret-change-me"),
		SkipPaths: []string{"/health", "/metrics"},
	}
}

// JWTAuthMiddleware validates bearer tokens issued by the user service
type JWTAuthMiddleware struct {
	config JWTAuthConfig
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(cfg JWTAuthConfig) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{config: cfg}
}

// Authenticate returns a middleware that rejects requests without a valid
// token and stores the authenticated user id on the request context
func (j *JWTAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if j.shouldSkipAuth(r.URL.Path) || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := ExtractBearerToken(r)
		if err != nil {
			slog.Warn("Failed to extract bearer token", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or missing authorization header")
			return
		}

		userID, err := j.parseToken(tokenString)
		if err != nil {
			slog.Warn("Token validation failed", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), userID)))
	})
}

func (j *JWTAuthMiddleware) shouldSkipAuth(path string) bool {
	for _, p := range j.config.SkipPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// parseToken validates the HS256 signature and expiry and returns the
// user id carried in the subject claim
func (j *JWTAuthMiddleware) parseToken(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(j.config.Secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("token is not valid")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim %q: %w", claims.Subject, err)
	}
	return uint(userID), nil
}

// ExtractBearerToken pulls the token out of the Authorization header
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("authorization header is missing")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("authorization header is not a bearer token")
	}
	return parts[1], nil
}

// SignAccessToken issues an HS256 token with the user id as subject.
// The user service uses this on successful OTP verification.
func SignAccessToken(secret string, userID uint, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// SetUserID stores the authenticated user id on the context
func SetUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated user id, if any
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDContextKey).(uint)
	return id, ok
}
