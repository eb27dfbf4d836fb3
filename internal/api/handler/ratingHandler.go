package handler

import (
	"errors"
	"net/http"

	"prompthub/internal/api/dto"
	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	svc service.RatingService
}

func NewRatingHandler(svc service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

// RegisterRoutes attaches rating endpoints under the prompt group.
func (h *RatingHandler) RegisterRoutes(prompts *gin.RouterGroup, authMW gin.HandlerFunc) {
	prompts.GET("/:prompt_id/ratings", h.ListForPrompt)
	prompts.PUT("/:prompt_id/ratings", authMW, h.Rate)
	prompts.GET("/:prompt_id/ratings/me", authMW, h.MyRating)
	prompts.DELETE("/:prompt_id/ratings", authMW, h.Delete)
}

// Rate creates or replaces the caller's score for the prompt.
func (h *RatingHandler) Rate(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	var in dto.RateDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	rating, err := h.svc.CreateOrUpdate(c.GetString("userID"), id, in.Score)
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to rate prompt"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

func (h *RatingHandler) MyRating(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	rating, err := h.svc.GetUserRating(c.GetString("userID"), id)
	if err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "rating not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch rating"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

func (h *RatingHandler) Delete(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.GetString("userID"), id); err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "rating not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete rating"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RatingHandler) ListForPrompt(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	skip, limit := parsePagination(c)

	ratings, total, err := h.svc.GetPromptRatings(id, skip, limit)
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list ratings"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedRatingResponse(ratings, total, skip, limit))
}
