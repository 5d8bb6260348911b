package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wakja/wakja-be/internal/auth"
	"github.com/wakja/wakja-be/internal/cache"
	"github.com/wakja/wakja-be/internal/config"
	"github.com/wakja/wakja-be/internal/db"
	"github.com/wakja/wakja-be/internal/handler"
	"github.com/wakja/wakja-be/internal/observability"
	"github.com/wakja/wakja-be/internal/router"
	"github.com/wakja/wakja-be/internal/service"
	"github.com/wakja/wakja-be/internal/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.IsProduction(), os.Stdout)
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	gdb, err := db.Open(db.Options{Driver: cfg.DatabaseDriver, Path: cfg.DatabasePath, URL: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	var viewGate service.ViewGate
	if cfg.RedisURL != "" {
		client, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			// Redis 不可用时退回数据库冷却判断
			logger.Warn("redis unavailable, view cooldown uses database only", "error", err)
		} else {
			defer client.Close()
			viewGate = cache.NewViewGate(client, service.ViewCooldown)
			logger.Info("redis view gate enabled")
		}
	}

	store, uploadDir, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		return err
	}

	api := handler.NewAPI(handler.Deps{
		DB:            gdb,
		Tokens:        tokens,
		Store:         store,
		ViewGate:      viewGate,
		Logger:        logger,
		SecureCookies: cfg.IsProduction(),
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, router.Options{
		Origins:       cfg.Origins(),
		Logger:        logger,
		UploadDir:     uploadDir,
		UploadURLPath: cfg.UploadURLPath,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "env", cfg.Env, "database", cfg.DatabaseDriver, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore returns the object store and, for local storage, the directory
// the router should serve.
func openStore(ctx context.Context, cfg config.AppConfig) (service.ObjectStore, string, error) {
	if cfg.StorageDriver == config.StorageS3 {
		store, err := storage.NewS3(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	}

	store, err := storage.NewLocal(cfg.UploadDir, cfg.UploadURLPath)
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}

