package main

import (
	"campaign/internal/api"
	"campaign/internal/auth"
	"campaign/internal/cache"
	"campaign/internal/config"
	"campaign/internal/logging"
	"campaign/internal/metrics"
	"campaign/internal/model"
	"campaign/internal/service"
	"campaign/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Error("server stopped with error")
		os.Exit(1)
	}
}

func run() error {
	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	// 初始化logger
	logCloser := logging.Configure(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		return fmt.Errorf("initialise repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close repository")
		}
	}()

	if err := model.SeedAdminUser(ctx, repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to seed admin user")
	}
	if cfg.SeedSampleContent {
		if err := model.SeedSampleContent(ctx, repo); err != nil {
			logrus.WithError(err).Warn("failed to seed sample content")
		}
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		return fmt.Errorf("initialise storage: %w", err)
	}
	if ensurer, ok := store.(storage.BucketEnsurer); ok {
		if err := ensurer.EnsureBucket(ctx); err != nil {
			logrus.WithError(err).Warn("failed to ensure storage bucket")
		}
	}

	listCache, err := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTLSeconds) * time.Second,
	})
	if err != nil {
		logrus.WithError(err).Warn("redis unavailable, public lists will not be cached")
		listCache = cache.Noop{}
	}
	defer listCache.Close()

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTExpirationMinutes)*time.Minute)
	if err != nil {
		return fmt.Errorf("initialise token manager: %w", err)
	}

	photos := service.NewPhotoStore(store, storage.NewURLBuilder(cfg.StoragePublicBaseURL), service.PhotoOptions{
		MaxBytes:       cfg.PhotoMaxBytes,
		PlaceholderURL: cfg.PhotoPlaceholderURL,
		Resize:         cfg.PhotoResize,
		Width:          cfg.PhotoWidth,
		Height:         cfg.PhotoHeight,
	})
	if err := photos.EnsurePlaceholder(ctx); err != nil {
		logrus.WithError(err).Warn("failed to create placeholder photo")
	}

	m := metrics.New()
	services := service.NewServices(repo, tokens, photos, listCache, m)
	httpHandler := api.NewHTTPHandler(cfg, services, store, m)

	// 设置Gin模式
	gin.SetMode(cfg.GinMode)
	r := gin.New()

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())
	r.Use(m.Middleware())

	httpHandler.RegisterRoutes(r)

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logrus.WithField("host", serverHost).Info("服务器启动")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// CORSMiddleware CORS跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware 日志记录中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
