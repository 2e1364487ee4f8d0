package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
	"github.com/manjunathhanchinal/BackendAppStore/internal/middleware"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository/mocks"
	"github.com/manjunathhanchinal/BackendAppStore/internal/service"
)

const testSecret = "test-secret"

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService, err := service.NewAuthService(new(mocks.UserRepository), testSecret, 720)
	require.NoError(t, err)

	r := gin.New()
	protected := r.Group("/", middleware.Auth(authService))
	protected.GET("/whoami", func(c *gin.Context) {
		caller, ok := middleware.CallerFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": caller.UserID, "role": caller.Role})
	})
	protected.GET("/admin-only", middleware.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func signToken(t *testing.T, secret string, userID uint, role domain.Role, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(expiresIn).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidTokenSetsCaller(t *testing.T) {
	r := testRouter(t)
	token := signToken(t, testSecret, 42, domain.RoleUser, time.Hour)

	w := doRequest(r, "/whoami", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestAuth_MissingHeader(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/whoami", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	r := testRouter(t)

	w := doRequest(r, "/whoami", "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	r := testRouter(t)
	token := signToken(t, testSecret, 42, domain.RoleUser, -time.Minute)

	w := doRequest(r, "/whoami", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSignature(t *testing.T) {
	r := testRouter(t)
	token := signToken(t, "some-other-secret", 42, domain.RoleUser, time.Hour)

	w := doRequest(r, "/whoami", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := testRouter(t)

	adminToken := signToken(t, testSecret, 1, domain.RoleAdmin, time.Hour)
	w := doRequest(r, "/admin-only", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)

	userToken := signToken(t, testSecret, 2, domain.RoleUser, time.Hour)
	w = doRequest(r, "/admin-only", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCallerFrom_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := middleware.CallerFrom(c)

	assert.False(t, ok)
}
