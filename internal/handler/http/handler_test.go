package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
	httpHandler "github.com/manjunathhanchinal/BackendAppStore/internal/handler/http"
	"github.com/manjunathhanchinal/BackendAppStore/internal/middleware"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository"
	"github.com/manjunathhanchinal/BackendAppStore/internal/repository/mocks"
	"github.com/manjunathhanchinal/BackendAppStore/internal/service"
)

func newUserRouter(t *testing.T, mockUserRepo *mocks.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService, err := service.NewAuthService(mockUserRepo, "handler-test-secret", 720)
	require.NoError(t, err)
	handler := httpHandler.NewUserHandler(authService)

	r := gin.New()
	users := r.Group("/api/users")
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.GET("/me", middleware.Auth(authService), handler.Me)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}, token string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_Register_Created(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").
		Return(nil, repository.ErrUserNotFound).Once()
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = 1 }).
		Return(nil).Once()

	r := newUserRouter(t, mockUserRepo)
	w := postJSON(r, "/api/users/register",
		gin.H{"username": "alice", "password": "secret123", "role": "user"}, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "secret123")
	mockUserRepo.AssertExpectations(t)
}

func TestUserHandler_Register_DuplicateIsBadRequest(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice"}, nil).Once()

	r := newUserRouter(t, mockUserRepo)
	w := postJSON(r, "/api/users/register",
		gin.H{"username": "alice", "password": "secret123"}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestUserHandler_Login_ShapeAndUnauthorized(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice", Password: string(hashed), Role: domain.RoleUser}, nil)
	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrUserNotFound)

	r := newUserRouter(t, mockUserRepo)

	w := postJSON(r, "/api/users/login", gin.H{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
		Token    string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "user", resp.Role)
	assert.NotEmpty(t, resp.Token)

	// Wrong password and unknown user must produce the same response shape.
	wrongPass := postJSON(r, "/api/users/login", gin.H{"username": "alice", "password": "nope"}, "")
	unknown := postJSON(r, "/api/users/login", gin.H{"username": "ghost", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestUserHandler_Me(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	mockUserRepo := new(mocks.UserRepository)
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice", Password: string(hashed), Role: domain.RoleUser}, nil).Once()
	mockUserRepo.On("FindByID", mock.Anything, uint(1)).
		Return(&domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}, nil).Once()

	r := newUserRouter(t, mockUserRepo)
	login := postJSON(r, "/api/users/login", gin.H{"username": "alice", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, login.Code)
	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginResp))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestCatalogHandler_Update_RejectsUnknownFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUserRepo := new(mocks.UserRepository)
	mockAppRepo := new(mocks.AppRepository)
	authService, err := service.NewAuthService(mockUserRepo, "handler-test-secret", 720)
	require.NoError(t, err)
	catalogHandler := httpHandler.NewCatalogHandler(service.NewCatalogService(mockAppRepo))

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice", Password: string(hashed), Role: domain.RoleUser}, nil).Once()

	r := gin.New()
	r.POST("/api/users/login", httpHandler.NewUserHandler(authService).Login)
	r.PUT("/api/apps/:id", middleware.Auth(authService), catalogHandler.Update)

	login := postJSON(r, "/api/users/login", gin.H{"username": "alice", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, login.Code)
	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginResp))

	// downloadCount is not a mutable field; the strict decoder must refuse it.
	body := bytes.NewBufferString(`{"name": "renamed", "downloadCount": 9999}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/apps/1", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAppRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mockAppRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
