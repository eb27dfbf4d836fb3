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
	"prompthub/internal/api/repository"
	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPromptService mocks the PromptService interface
type MockPromptService struct {
	mock.Mock
}

func (m *MockPromptService) Create(userID string, prompt *models.Prompt) error {
	args := m.Called(userID, prompt)
	return args.Error(0)
}

func (m *MockPromptService) Get(promptID int64, viewerID string, viewerIsAdmin bool) (*models.Prompt, error) {
	args := m.Called(promptID, viewerID, viewerIsAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptService) HasLiked(promptID int64, userID string) (bool, error) {
	args := m.Called(promptID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromptService) List(filter repository.PromptFilter, offset, limit int) ([]models.Prompt, int64, error) {
	args := m.Called(filter, offset, limit)
	return args.Get(0).([]models.Prompt), args.Get(1).(int64), args.Error(2)
}

func (m *MockPromptService) Update(promptID int64, userID string, update service.PromptUpdate) (*models.Prompt, error) {
	args := m.Called(promptID, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prompt), args.Error(1)
}

func (m *MockPromptService) Delete(promptID int64, userID string, isAdmin bool) error {
	args := m.Called(promptID, userID, isAdmin)
	return args.Error(0)
}

func (m *MockPromptService) Like(promptID int64, userID string) error {
	args := m.Called(promptID, userID)
	return args.Error(0)
}

func (m *MockPromptService) Unlike(promptID int64, userID string) error {
	args := m.Called(promptID, userID)
	return args.Error(0)
}

func (m *MockPromptService) Search(keyword string, offset, limit int) ([]models.Prompt, int64, error) {
	args := m.Called(keyword, offset, limit)
	return args.Get(0).([]models.Prompt), args.Get(1).(int64), args.Error(2)
}

func (m *MockPromptService) Trending(ctx context.Context, limit int) ([]models.Prompt, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Prompt), args.Error(1)
}

func (m *MockPromptService) Report(promptID int64, userID string) error {
	args := m.Called(promptID, userID)
	return args.Error(0)
}

// asUser injects the identity usually set by the auth middleware.
func asUser(userID string, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

func TestGetPrompt_Public(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.GET("/prompts/:prompt_id", h.Get)

	prompt := &models.Prompt{
		ID:       1,
		Title:    "Code review helper",
		Content:  "Review the following diff",
		Slug:     "code-review-helper-abc12345",
		IsPublic: true,
		UserID:   "owner-1",
	}
	prompt.SetTagList([]string{"review", "go"})
	mockSvc.On("Get", int64(1), "", false).Return(prompt, nil)

	req, _ := http.NewRequest("GET", "/prompts/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PromptResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Code review helper", response.Title)
	assert.Equal(t, []string{"review", "go"}, response.Tags)
	// anonymous readers never trigger a like lookup
	mockSvc.AssertNotCalled(t, "HasLiked")
}

func TestGetPrompt_PrivateHiddenFromStrangers(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.GET("/prompts/:prompt_id", asUser("stranger-1", false), h.Get)

	mockSvc.On("Get", int64(2), "stranger-1", false).
		Return(nil, service.ErrPromptNotFound)

	req, _ := http.NewRequest("GET", "/prompts/2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// a private prompt reads as missing, not forbidden
	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSvc.AssertNotCalled(t, "HasLiked")
}

func TestGetPrompt_PrivateVisibleToOwner(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.GET("/prompts/:prompt_id", asUser("owner-1", false), h.Get)

	prompt := &models.Prompt{
		ID:       2,
		Title:    "Secret prompt",
		IsPublic: false,
		UserID:   "owner-1",
	}
	mockSvc.On("Get", int64(2), "owner-1", false).Return(prompt, nil)
	mockSvc.On("HasLiked", int64(2), "owner-1").Return(false, nil)

	req, _ := http.NewRequest("GET", "/prompts/2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPrompt_LikedByViewer(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.GET("/prompts/:prompt_id", asUser("fan-1", false), h.Get)

	prompt := &models.Prompt{
		ID:        3,
		Title:     "Popular prompt",
		IsPublic:  true,
		UserID:    "owner-1",
		LikeCount: 12,
	}
	mockSvc.On("Get", int64(3), "fan-1", false).Return(prompt, nil)
	mockSvc.On("HasLiked", int64(3), "fan-1").Return(true, nil)

	req, _ := http.NewRequest("GET", "/prompts/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PromptResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.LikedByMe)
	assert.Equal(t, int64(12), response.LikeCount)
}

func TestCreatePrompt_Success(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.POST("/prompts", asUser("user-1", false), h.Create)

	mockSvc.On("Create", "user-1", mock.AnythingOfType("*models.Prompt")).Return(nil)

	body, _ := json.Marshal(dto.CreatePromptDTO{
		Title:   "Bug triage",
		Content: "Classify this bug report",
		Tags:    []string{"triage"},
	})

	req, _ := http.NewRequest("POST", "/prompts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCreatePrompt_MissingTitle(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.POST("/prompts", asUser("user-1", false), h.Create)

	body, _ := json.Marshal(map[string]string{"content": "no title"})

	req, _ := http.NewRequest("POST", "/prompts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestUpdatePrompt_NotOwner(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.PUT("/prompts/:prompt_id", asUser("stranger-1", false), h.Update)

	mockSvc.On("Update", int64(5), "stranger-1", mock.Anything).
		Return(nil, service.ErrNotPromptOwner)

	title := "hijacked"
	body, _ := json.Marshal(dto.UpdatePromptDTO{Title: &title})

	req, _ := http.NewRequest("PUT", "/prompts/5", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLikePrompt_NotFound(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.POST("/prompts/:prompt_id/like", asUser("user-1", false), h.Like)

	mockSvc.On("Like", int64(99), "user-1").Return(service.ErrPromptNotFound)

	req, _ := http.NewRequest("POST", "/prompts/99/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePrompt_AdminBypassesOwnership(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.DELETE("/prompts/:prompt_id", asUser("admin-1", true), h.Delete)

	mockSvc.On("Delete", int64(7), "admin-1", true).Return(nil)

	req, _ := http.NewRequest("DELETE", "/prompts/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestListPrompts_Pagination(t *testing.T) {
	mockSvc := new(MockPromptService)
	h := NewPromptHandler(mockSvc)
	router := setupRouter()
	router.GET("/prompts", h.List)

	mockSvc.On("List", repository.PromptFilter{PublicOnly: true}, 40, 20).
		Return([]models.Prompt{}, int64(120), nil)

	req, _ := http.NewRequest("GET", "/prompts?skip=40&limit=20", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PaginatedPromptResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(120), response.Total)
	assert.Equal(t, 40, response.Skip)
	assert.Equal(t, 20, response.Limit)
}
