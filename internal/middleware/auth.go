package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/manjunathhanchinal/BackendAppStore/internal/policy"
	"github.com/manjunathhanchinal/BackendAppStore/internal/service"
)

// callerKey is the gin context key holding the authenticated caller.
const callerKey = "caller"

// ErrMissingAuthHeader is returned when no Authorization header is present.
var ErrMissingAuthHeader = errors.New("authorization header is required")

// Auth returns a middleware that validates the bearer token and stores
// the caller identity in the request context. Requests with a missing,
// malformed, invalid or expired token are rejected before any handler runs.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	if authService == nil {
		panic("AuthService cannot be nil for Auth middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			if errors.Is(err, ErrMissingAuthHeader) {
				logrus.Warn("Auth middleware: missing Authorization header")
			} else {
				logrus.WithError(err).Warn("Auth middleware: malformed Authorization header")
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		caller, err := authService.Authenticate(tokenStr)
		if err != nil {
			logrus.WithError(err).Warn("Auth middleware: invalid token")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireAdmin gates a route to admin callers. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if !caller.IsAdmin() {
			logrus.WithField("user_id", caller.UserID).Warn("Admin-only route rejected non-admin caller")
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom extracts the authenticated caller set by Auth.
func CallerFrom(c *gin.Context) (policy.Caller, bool) {
	value, exists := c.Get(callerKey)
	if !exists {
		return policy.Caller{}, false
	}
	caller, ok := value.(policy.Caller)
	return caller, ok
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid token format, expected 'Bearer <token>'")
	}
	return parts[1], nil
}
