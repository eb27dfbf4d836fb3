package handler

import (
	"errors"
	"net/http"

	"prompthub/internal/api/dto"
	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService   service.AdminService
	commentService service.CommentService
}

func NewAdminHandler(adminService service.AdminService, commentService service.CommentService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		commentService: commentService,
	}
}

// RegisterRoutes wires the admin endpoints; the group must already carry
// auth and admin middleware.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Stats)
	rg.GET("/users", h.ListUsers)
	rg.PUT("/users/:user_id", h.UpdateUser)
	rg.DELETE("/users/:user_id", h.DeleteUser)
	rg.GET("/prompts/reported", h.ListReportedPrompts)
	rg.POST("/prompts/:prompt_id/moderate", h.ModeratePrompt)
	rg.DELETE("/comments/:comment_id", h.DeleteComment)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	skip, limit := parsePagination(c)

	users, total, err := h.adminService.ListUsers(c.Query("search"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedUserResponse(users, total, skip, limit, true))
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var in dto.AdminUpdateUserDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.adminService.UpdateUser(c.Param("user_id"), service.UserModeration{
		IsActive: in.IsActive,
		IsAdmin:  in.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user, true))
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	// an admin cannot delete their own account while logged in
	if c.Param("user_id") == c.GetString("userID") {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot delete your own account"})
		return
	}

	if err := h.adminService.DeleteUser(c.Param("user_id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListReportedPrompts(c *gin.Context) {
	skip, limit := parsePagination(c)

	prompts, total, err := h.adminService.ListReportedPrompts(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list reported prompts"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedPromptResponse(prompts, total, skip, limit))
}

func (h *AdminHandler) ModeratePrompt(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	var in dto.ModeratePromptDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	prompt, err := h.adminService.ModeratePrompt(id, service.PromptModeration{
		IsApproved: in.IsApproved,
		IsFeatured: in.IsFeatured,
	})
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to moderate prompt"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToPromptResponse(prompt))
}

// DeleteComment soft-deletes any comment regardless of ownership.
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(id, c.GetString("userID"), true); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete comment"})
		return
	}

	c.Status(http.StatusNoContent)
}
