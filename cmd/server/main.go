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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"tubeshelf/internal/auth"
	"tubeshelf/internal/catalog"
	"tubeshelf/internal/config"
	apphttp "tubeshelf/internal/http"
	"tubeshelf/internal/repository/sqlite"
	"tubeshelf/internal/service"
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

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	playlistRepo := sqlite.NewPlaylistRepository(db)
	watchLaterRepo := sqlite.NewWatchLaterRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := playlistRepo.Init(ctx); err != nil {
		logger.Fatalf("init playlist repository: %v", err)
	}
	if err := watchLaterRepo.Init(ctx); err != nil {
		logger.Fatalf("init watch later repository: %v", err)
	}

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	userService := service.NewUserService(userRepo, hasher)
	playlistService := service.NewPlaylistService(playlistRepo)
	watchLaterService := service.NewWatchLaterService(watchLaterRepo)

	catalogSvc := buildCatalog(ctx, cfg, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		playlistService,
		watchLaterService,
		catalogSvc,
		tokens,
		cfg.Auth.CookieName,
		cfg.Production(),
		logger,
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

// buildCatalog wires the YouTube collaborator, optionally fronted by a
// redis metadata cache. The server runs without either: catalog routes
// then report the missing configuration.
func buildCatalog(ctx context.Context, cfg config.Config, logger *logrus.Logger) catalog.Service {
	if cfg.YouTube.APIKey == "" {
		logger.Warn("youtube api key not set; video catalog routes disabled")
		return nil
	}

	svc, err := catalog.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		logger.Fatalf("setup video catalog: %v", err)
	}

	if cfg.Redis.Addr == "" {
		return svc
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warnf("redis unreachable, catalog cache disabled: %v", err)
		return svc
	}

	logger.Infof("caching catalog metadata in redis at %s", cfg.Redis.Addr)
	ttl := time.Duration(cfg.Redis.TTLMinutes) * time.Minute
	return catalog.NewCachedService(svc, client, ttl, logger)
}
