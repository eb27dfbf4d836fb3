package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"prompthub/internal/api/dto"
	"prompthub/internal/api/repository"
	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	svc service.PromptService
}

func NewPromptHandler(svc service.PromptService) *PromptHandler {
	return &PromptHandler{svc: svc}
}

func (h *PromptHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	// Public routes; optional auth lets owners see their private prompts
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/trending", h.Trending)
	rg.GET("/:prompt_id", optionalAuthMW, h.Get)

	// Authenticated routes
	rg.POST("", authMW, h.Create)
	rg.PUT("/:prompt_id", authMW, h.Update)
	rg.DELETE("/:prompt_id", authMW, h.Delete)
	rg.POST("/:prompt_id/like", authMW, h.Like)
	rg.DELETE("/:prompt_id/like", authMW, h.Unlike)
	rg.POST("/:prompt_id/report", authMW, h.Report)
}

func promptID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("prompt_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid prompt id"})
		return 0, false
	}
	return id, true
}

func (h *PromptHandler) List(c *gin.Context) {
	skip, limit := parsePagination(c)

	filter := repository.PromptFilter{
		Category:   c.Query("category"),
		Tag:        c.Query("tag"),
		PublicOnly: true,
	}

	prompts, total, err := h.svc.List(filter, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list prompts"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedPromptResponse(prompts, total, skip, limit))
}

func (h *PromptHandler) Get(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	prompt, err := h.svc.Get(id, c.GetString("userID"), c.GetBool("isAdmin"))
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch prompt"})
		return
	}

	resp := dto.FromModelToPromptResponse(prompt)
	if viewerID := c.GetString("userID"); viewerID != "" {
		if liked, err := h.svc.HasLiked(id, viewerID); err == nil {
			resp.LikedByMe = liked
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PromptHandler) Create(c *gin.Context) {
	var in dto.CreatePromptDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	prompt := in.ToModel()
	if err := h.svc.Create(c.GetString("userID"), &prompt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create prompt"})
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToPromptResponse(&prompt))
}

func (h *PromptHandler) Update(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	var in dto.UpdatePromptDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	prompt, err := h.svc.Update(id, c.GetString("userID"), service.PromptUpdate{
		Title:       in.Title,
		Content:     in.Content,
		Description: in.Description,
		Category:    in.Category,
		Tags:        in.Tags,
		IsPublic:    in.IsPublic,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromptNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
		case errors.Is(err, service.ErrNotPromptOwner):
			c.JSON(http.StatusForbidden, gin.H{"detail": "not the prompt owner"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to update prompt"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToPromptResponse(prompt))
}

func (h *PromptHandler) Delete(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	err := h.svc.Delete(id, c.GetString("userID"), c.GetBool("isAdmin"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromptNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
		case errors.Is(err, service.ErrNotPromptOwner):
			c.JSON(http.StatusForbidden, gin.H{"detail": "not the prompt owner"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete prompt"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PromptHandler) Like(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	if err := h.svc.Like(id, c.GetString("userID")); err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to like prompt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "liked"})
}

func (h *PromptHandler) Unlike(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	if err := h.svc.Unlike(id, c.GetString("userID")); err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to unlike prompt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unliked"})
}

func (h *PromptHandler) Search(c *gin.Context) {
	skip, limit := parsePagination(c)

	prompts, total, err := h.svc.Search(c.Query("q"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "search failed"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedPromptResponse(prompts, total, skip, limit))
}

func (h *PromptHandler) Trending(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	prompts, err := h.svc.Trending(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch trending prompts"})
		return
	}

	resp := make([]dto.PromptResponse, 0, len(prompts))
	for i := range prompts {
		resp = append(resp, dto.FromModelToPromptResponse(&prompts[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PromptHandler) Report(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	if err := h.svc.Report(id, c.GetString("userID")); err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to report prompt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reported"})
}
