package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prompthub/internal/api/handler"
	"prompthub/internal/api/middleware"
	"prompthub/internal/api/service"
	"prompthub/internal/api/ws"
	"prompthub/internal/config"
	"prompthub/pkg/logger"
)

// appServices holds the initialized services the routes need.
type appServices struct {
	cfg                 *config.Config
	authService         service.AuthService
	promptService       service.PromptService
	commentService      service.CommentService
	notificationService service.NotificationService
	ratingService       service.RatingService
	followService       service.FollowService
	userService         service.UserService
	adminService        service.AdminService
	hub                 *ws.Hub
}

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.CORS(svc.cfg.CORSOrigins))

	limiter := middleware.NewRateLimiter(svc.cfg.RateLimitRPS, svc.cfg.RateLimitBurst)
	r.Use(limiter.Middleware())

	authMW := middleware.AuthMiddleware(svc.authService)
	optionalAuthMW := middleware.OptionalAuthMiddleware(svc.authService)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "prompthub"})
	})

	api := r.Group("/api/v1")
	{
		authHandler := handler.NewAuthHandler(svc.authService, int64(svc.cfg.AccessTokenTTL.Seconds()))
		authHandler.RegisterRoutes(api.Group("/auth"), authMW)

		prompts := api.Group("/prompts")
		promptHandler := handler.NewPromptHandler(svc.promptService)
		promptHandler.RegisterRoutes(prompts, authMW, optionalAuthMW)

		users := api.Group("/users")

		comments := api.Group("/comments")
		commentHandler := handler.NewCommentHandler(svc.commentService)
		commentHandler.RegisterRoutes(prompts, comments, users, authMW)

		ratingHandler := handler.NewRatingHandler(svc.ratingService)
		ratingHandler.RegisterRoutes(prompts, authMW)

		notifications := api.Group("/notifications", authMW)
		notificationHandler := handler.NewNotificationHandler(svc.notificationService)
		notificationHandler.RegisterRoutes(notifications)

		userHandler := handler.NewUserHandler(svc.userService, svc.followService)
		userHandler.RegisterRoutes(users, authMW, optionalAuthMW)

		admin := api.Group("/admin", authMW, middleware.RequireAdmin())
		adminHandler := handler.NewAdminHandler(svc.adminService, svc.commentService)
		adminHandler.RegisterRoutes(admin)

		// live notification stream
		api.GET("/ws/notifications", authMW, ws.WSHandler(svc.hub))
	}
}
