package handler

import (
	"errors"
	"net/http"
	"strconv"

	"prompthub/internal/api/dto"
	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterRoutes wires comment endpoints. Creation and listing hang off the
// prompt group; edits and deletes address comments directly.
func (h *CommentHandler) RegisterRoutes(prompts, comments, users *gin.RouterGroup, authMW gin.HandlerFunc) {
	prompts.GET("/:prompt_id/comments", h.ListForPrompt)
	prompts.POST("/:prompt_id/comments", authMW, h.Create)

	comments.POST("", authMW, h.CreateDirect)
	comments.GET("/:comment_id", h.Get)
	comments.PUT("/:comment_id", authMW, h.Update)
	comments.DELETE("/:comment_id", authMW, h.Delete)

	users.GET("/:user_id/comments", h.ListForUser)
}

func commentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid comment id"})
		return 0, false
	}
	return id, true
}

func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	h.create(c, id, in.ParentID, in.Content)
}

// CreateDirect takes the prompt id in the body instead of the path.
func (h *CommentHandler) CreateDirect(c *gin.Context) {
	var in dto.CreateCommentDirectDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	h.create(c, in.PromptID, in.ParentID, in.Content)
}

func (h *CommentHandler) create(c *gin.Context, promptID int64, parentID *int64, content string) {
	comment, err := h.svc.Create(c.GetString("userID"), promptID, parentID, content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromptNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "parent comment not found"})
		case errors.Is(err, service.ErrParentMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "parent comment belongs to another prompt"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}

	comment, err := h.svc.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch comment"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

// ListForPrompt returns the prompt's comments as a nested reply tree.
func (h *CommentHandler) ListForPrompt(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}

	comments, err := h.svc.GetPromptComments(id)
	if err != nil {
		if errors.Is(err, service.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "prompt not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.BuildCommentTree(comments)})
}

// ListForUser returns a user's comment history, flat and paginated.
func (h *CommentHandler) ListForUser(c *gin.Context) {
	skip, limit := parsePagination(c)

	comments, total, err := h.svc.GetUserComments(c.Param("user_id"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedCommentResponse(comments, total, skip, limit))
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}

	var in dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	comment, err := h.svc.Update(id, c.GetString("userID"), in.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "comment not found"})
		case errors.Is(err, service.ErrNotCommentOwner):
			c.JSON(http.StatusForbidden, gin.H{"detail": "not the comment owner"})
		case errors.Is(err, service.ErrCommentIsDeleted):
			c.JSON(http.StatusConflict, gin.H{"detail": "comment has been deleted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to update comment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := commentID(c)
	if !ok {
		return
	}

	err := h.svc.Delete(id, c.GetString("userID"), c.GetBool("isAdmin"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "comment not found"})
		case errors.Is(err, service.ErrNotCommentOwner):
			c.JSON(http.StatusForbidden, gin.H{"detail": "not the comment owner"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete comment"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
