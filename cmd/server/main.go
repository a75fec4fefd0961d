package main

// @title Mail Archive API
// @version 1.0.0
// @description 内部邮件归档浏览系统的后端 API 文档
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 使用格式：Bearer {token}

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mailarchive/backend/internal/auth"
	jwtpkg "mailarchive/backend/internal/auth/jwt"
	"mailarchive/backend/internal/config"
	"mailarchive/backend/internal/health"
	"mailarchive/backend/internal/logger"
	"mailarchive/backend/internal/monitoring"
	"mailarchive/backend/internal/pool"
	"mailarchive/backend/internal/service"
	"mailarchive/backend/internal/storage"
	"mailarchive/backend/internal/storage/hybrid"
	"mailarchive/backend/internal/storage/memory"
	"mailarchive/backend/internal/storage/redis"
	httptransport "mailarchive/backend/internal/transport/http"
)

// main 启动邮件归档浏览服务的 HTTP API。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 初始化日志系统
	log, err := logger.NewLogger(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		LogFile:     cfg.Log.LogFile,
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      28,
		Compress:    true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()
	log.Info("starting mail archive server",
		zap.String("version", "1.0.0"),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
	)

	// 初始化存储层
	var store storage.Store
	var cache *redis.Cache

	// 根据配置选择存储类型
	if cfg.Database.Type != "" && cfg.Database.DSN != "" {
		hybridStore, err := hybrid.NewStore(cfg.Database.Type, cfg.Database.DSN, &cfg.Redis)
		if err != nil {
			log.Fatal("failed to initialize database storage", zap.Error(err))
		}
		store = hybridStore
		cache = hybridStore.Cache()
		log.Info("using database storage",
			zap.String("type", cfg.Database.Type),
			zap.String("redis_address", cfg.Redis.Address),
		)
	} else {
		// 内存存储（开发环境）
		store = memory.NewStore()
		log.Info("using memory storage (development mode)")
	}
	defer store.Close()

	// 初始化监控与健康检查
	metrics := monitoring.NewMetrics()
	healthChecker := health.NewHealthChecker(store, cache, log)
	log.Info("monitoring system initialized")

	// 活动日志异步写入池
	// 生命周期由 Stop 控制，关闭时排空队列再退出
	workers := pool.NewWorkerPool(cfg.Archive.ActivityWorkers, cfg.Archive.ActivityQueue)
	workers.Start(context.Background())
	log.Info("activity worker pool started",
		zap.Int("workers", cfg.Archive.ActivityWorkers),
		zap.Int("queue_size", cfg.Archive.ActivityQueue),
	)

	// 初始化认证
	authService := auth.NewService(store)
	jwtManager := jwtpkg.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	log.Info("JWT configuration",
		zap.String("issuer", cfg.JWT.Issuer),
		zap.Duration("access_expiry", cfg.JWT.AccessExpiry),
		zap.Duration("refresh_expiry", cfg.JWT.RefreshExpiry),
	)

	// 初始化服务层
	commentService := service.NewCommentService(store)
	emailService := service.NewEmailService(store, commentService)
	searchService := service.NewSearchService(store)
	activityService := service.NewActivityService(store, workers, log, metrics)
	userService := service.NewUserService(store)

	// 创建 HTTP 服务器
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:          cfg,
		AuthService:     authService,
		SearchService:   searchService,
		EmailService:    emailService,
		CommentService:  commentService,
		ActivityService: activityService,
		UserService:     userService,
		JWTManager:      jwtManager,
		Metrics:         metrics,
		HealthChecker:   healthChecker,
		Cache:           cache,
		Logger:          log,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	// HTTP 服务器 goroutine
	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	// 定时刷新系统指标 goroutine
	group.Go(func() error {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		startedAt := time.Now()
		for {
			select {
			case <-groupCtx.Done():
				return nil
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)
				metrics.UpdateMemoryUsage(int64(m.Alloc))
				metrics.UpdateSystemUptime(time.Since(startedAt))
			}
		}
	})

	// 优雅关闭 goroutine
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// 关闭 HTTP 服务器
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", zap.Error(err))
		}

		// 排空活动日志队列，确保记录不丢失
		workers.Stop()

		log.Info("server stopped")
		return nil
	})

	// 等待所有 goroutine 完成
	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatal("server error", zap.Error(err))
	}

	log.Info("server exited cleanly")
}
