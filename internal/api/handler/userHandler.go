package handler

import (
	"errors"
	"net/http"

	"prompthub/internal/api/dto"
	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService   service.UserService
	followService service.FollowService
}

func NewUserHandler(userService service.UserService, followService service.FollowService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		followService: followService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	rg.PUT("/me", authMW, h.UpdateProfile)

	rg.GET("/:user_id", optionalAuthMW, h.GetProfile)
	rg.GET("/:user_id/prompts", optionalAuthMW, h.GetUserPrompts)
	rg.GET("/:user_id/followers", h.Followers)
	rg.GET("/:user_id/following", h.Following)

	rg.POST("/:user_id/follow", authMW, h.Follow)
	rg.DELETE("/:user_id/follow", authMW, h.Unfollow)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Param("user_id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to fetch user"})
		return
	}

	resp := dto.FromModelToUserResponse(user, false)
	if viewerID := c.GetString("userID"); viewerID != "" && viewerID != user.ID {
		if following, err := h.followService.IsFollowing(viewerID, user.ID); err == nil {
			resp.IsFollowing = &following
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var in dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.GetString("userID"), service.ProfileUpdate{
		DisplayName: in.DisplayName,
		Bio:         in.Bio,
		AvatarURL:   in.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user, true))
}

func (h *UserHandler) GetUserPrompts(c *gin.Context) {
	skip, limit := parsePagination(c)

	prompts, total, err := h.userService.GetUserPrompts(
		c.Param("user_id"),
		c.GetString("userID"),
		c.GetBool("isAdmin"),
		skip, limit,
	)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list prompts"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedPromptResponse(prompts, total, skip, limit))
}

func (h *UserHandler) Follow(c *gin.Context) {
	err := h.followService.Follow(c.GetString("userID"), c.Param("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot follow yourself"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to follow user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "following"})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	err := h.followService.Unfollow(c.GetString("userID"), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

func (h *UserHandler) Followers(c *gin.Context) {
	skip, limit := parsePagination(c)

	users, total, err := h.followService.Followers(c.Param("user_id"), skip, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list followers"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedUserResponse(users, total, skip, limit, false))
}

func (h *UserHandler) Following(c *gin.Context) {
	skip, limit := parsePagination(c)

	users, total, err := h.followService.Following(c.Param("user_id"), skip, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list following"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedUserResponse(users, total, skip, limit, false))
}
