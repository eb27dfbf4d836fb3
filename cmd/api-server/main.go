package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"prompthub/database"
	"prompthub/internal/api/repository"
	"prompthub/internal/api/service"
	"prompthub/internal/api/ws"
	"prompthub/internal/cache"
	"prompthub/internal/config"
	"prompthub/internal/events"
	"prompthub/pkg/logger"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	logger.Init(cfg.LogLevel)

	// Connect to the database and run migrations
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("could not connect to database: %v", err)
	}

	// Redis cache; the app degrades gracefully without it
	redisCache := cache.New(cfg.RedisURL)
	defer redisCache.Close()

	// Event bus for notification fan-out
	bus := events.NewBus()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	followRepo := repository.NewFollowRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, redisCache, cfg)
	promptService := service.NewPromptService(promptRepo, bus, redisCache, cfg)
	commentService := service.NewCommentService(commentRepo, promptRepo, bus)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	ratingService := service.NewRatingService(ratingRepo, promptRepo)
	followService := service.NewFollowService(followRepo, userRepo, bus)
	userService := service.NewUserService(userRepo, promptRepo)
	adminService := service.NewAdminService(userRepo, promptRepo, commentRepo, notificationRepo, refreshTokenRepo)

	// Websocket hub for live notification pushes
	hub := ws.NewHub()
	go hub.Run()

	service.RegisterNotificationFanout(bus, notificationService, hub)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	registerRoutes(r, &appServices{
		cfg:                 cfg,
		authService:         authService,
		promptService:       promptService,
		commentService:      commentService,
		notificationService: notificationService,
		ratingService:       ratingService,
		followService:       followService,
		userService:         userService,
		adminService:        adminService,
		hub:                 hub,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info().Int("port", cfg.HTTPPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	// let in-flight notification fan-outs finish
	bus.Wait()

	logger.Info().Msg("server stopped")
}
