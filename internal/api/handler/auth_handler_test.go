package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prompthub/internal/api/dto"
	"prompthub/internal/api/models"
	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, email, password, displayName string) (*models.User, error) {
	args := m.Called(username, email, password, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(email, password string) (string, string, *models.User, error) {
	args := m.Called(email, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(claims *service.Claims, refreshToken string) error {
	args := m.Called(claims, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*service.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) GetUser(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRegister_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService, 1800)
	router := setupRouter()
	router.POST("/register", h.Register)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
	}

	mockAuthService.On("Register", "testuser", "test@example.com", "password123", "").Return(user, nil)

	reqBody := dto.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "user-123", response.ID)
	assert.Equal(t, "testuser", response.Username)
	assert.Equal(t, "test@example.com", response.Email)

	mockAuthService.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService, 1800)
	router := setupRouter()
	router.POST("/register", h.Register)

	mockAuthService.On("Register", "testuser", "test@example.com", "password123", "").
		Return(nil, service.ErrEmailInUse)

	reqBody := dto.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	// the response must not reveal which field collided
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "account creation failed", response["detail"])

	mockAuthService.AssertExpectations(t)
}

func TestRegister_DuplicateUsernameSameBody(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService, 1800)
	router := setupRouter()
	router.POST("/register", h.Register)

	mockAuthService.On("Register", "testuser", "test@example.com", "password123", "").
		Return(nil, service.ErrNameInUse)

	reqBody := dto.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "account creation failed", response["detail"])
}

func TestLogin_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService, 1800)
	router := setupRouter()
	router.POST("/login", h.Login)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
	}

	mockAuthService.On("Login", "test@example.com", "password123").
		Return("access-token", "refresh-token", user, nil)

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(1800), response.ExpiresIn)
	assert.Equal(t, "user-123", response.User.ID)

	mockAuthService.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService, 1800)
	router := setupRouter()
	router.POST("/login", h.Login)

	mockAuthService.On("Login", "test@example.com", "wrongpass").
		Return("", "", nil, service.ErrInvalidCredentials)

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpass",
	})

	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "invalid credentials", response["detail"])
}

func TestLogin_UnknownEmailSameMessage(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService, 1800)
	router := setupRouter()
	router.POST("/login", h.Login)

	mockAuthService.On("Login", "nobody@example.com", "password123").
		Return("", "", nil, service.ErrInvalidCredentials)

	body, _ := json.Marshal(dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// unknown email and wrong password are indistinguishable
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "invalid credentials", response["detail"])
}

func TestRefreshToken_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService, 1800)
	router := setupRouter()
	router.POST("/refresh", h.RefreshToken)

	mockAuthService.On("RefreshTokens", "old-refresh").
		Return("new-access", "new-refresh", nil)

	body, _ := json.Marshal(dto.RefreshTokenRequest{RefreshToken: "old-refresh"})

	req, _ := http.NewRequest("POST", "/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "new-access", response["access_token"])
	assert.Equal(t, "new-refresh", response["refresh_token"])

	mockAuthService.AssertExpectations(t)
}

func TestRefreshToken_Invalid(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService, 1800)
	router := setupRouter()
	router.POST("/refresh", h.RefreshToken)

	mockAuthService.On("RefreshTokens", "stale-refresh").
		Return("", "", service.ErrInvalidToken)

	body, _ := json.Marshal(dto.RefreshTokenRequest{RefreshToken: "stale-refresh"})

	req, _ := http.NewRequest("POST", "/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
