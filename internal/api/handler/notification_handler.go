package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"prompthub/internal/api/dto"
	"prompthub/internal/api/models"
	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// RegisterRoutes wires the notification endpoints; all require auth.
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/unread-count", h.UnreadCount)
	rg.GET("/:notification_id", h.Get)
	rg.PATCH("/:notification_id/read", h.MarkAsRead)
	rg.PATCH("/read-all", h.MarkAllAsRead)
	rg.DELETE("/:notification_id", h.Delete)
}

func notificationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("notification_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid notification id"})
		return 0, false
	}
	return id, true
}

// ownedNotification loads the notification and enforces that it belongs to
// the caller. A missing notification is reported before an ownership failure.
func (h *NotificationHandler) ownedNotification(c *gin.Context, ctx context.Context, id int64) (*models.Notification, bool) {
	notification, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "notification not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch notification"})
		return nil, false
	}
	if notification.UserID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"detail": "not your notification"})
		return nil, false
	}
	return notification, true
}

// Create inserts a notification for another user, with the caller as sender.
func (h *NotificationHandler) Create(c *gin.Context) {
	var in dto.CreateNotificationDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	senderID := c.GetString("userID")
	notification, err := h.svc.Create(ctx, in.UserID, in.Type, in.Content, &senderID, in.Link)
	if err != nil {
		if errors.Is(err, service.ErrRecipientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "recipient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToNotificationResponse(notification))
}

func (h *NotificationHandler) Get(c *gin.Context) {
	id, ok := notificationID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	notification, ok := h.ownedNotification(c, ctx, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToNotificationResponse(notification))
}

func (h *NotificationHandler) List(c *gin.Context) {
	skip, limit := parsePagination(c)
	unreadOnly := c.Query("unread_only") == "true"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	notifications, err := h.svc.List(ctx, c.GetString("userID"), skip, limit, unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedNotificationResponse(notifications, skip, limit))
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	count, err := h.svc.UnreadCount(ctx, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := notificationID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, ok := h.ownedNotification(c, ctx, id); !ok {
		return
	}

	// marking an already-read notification succeeds quietly
	if err := h.svc.MarkAsRead(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to mark notification as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.MarkAllAsRead(ctx, c.GetString("userID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to mark notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := notificationID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, ok := h.ownedNotification(c, ctx, id); !ok {
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete notification"})
		return
	}

	c.Status(http.StatusNoContent)
}
