package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"devconnect/internal/config"
	"devconnect/internal/gravatar"
	apphttp "devconnect/internal/http"
	"devconnect/internal/repository/sqlite"
	"devconnect/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// broken storage means exit, not degraded serving
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	profileRepo := sqlite.NewProfileRepository(db)
	postRepo := sqlite.NewPostRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := profileRepo.Init(ctx); err != nil {
		logger.Fatalf("init profile repository: %v", err)
	}
	if err := postRepo.Init(ctx); err != nil {
		logger.Fatalf("init post repository: %v", err)
	}

	userService := service.NewUserService(userRepo, gravatar.Options{
		Size:    cfg.Avatar.Size,
		Rating:  cfg.Avatar.Rating,
		Default: cfg.Avatar.Default,
	})
	profileService := service.NewProfileService(profileRepo, cfg.Search.Fields)
	postService := service.NewPostService(postRepo)
	directoryService := service.NewDirectoryService(userService, profileService, postService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		profileService,
		directoryService,
		postService,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
