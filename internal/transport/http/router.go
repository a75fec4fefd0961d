package httptransport

import (
	"net/http"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"mailarchive/backend/internal/auth"
	jwtpkg "mailarchive/backend/internal/auth/jwt"
	"mailarchive/backend/internal/config"
	"mailarchive/backend/internal/health"
	"mailarchive/backend/internal/middleware"
	"mailarchive/backend/internal/monitoring"
	"mailarchive/backend/internal/service"
	"mailarchive/backend/internal/storage/redis"
)

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config          *config.Config
	AuthService     *auth.Service
	SearchService   *service.SearchService
	EmailService    *service.EmailService
	CommentService  *service.CommentService
	ActivityService *service.ActivityService
	UserService     *service.UserService
	JWTManager      *jwtpkg.Manager
	Metrics         *monitoring.Metrics
	HealthChecker   *health.HealthChecker
	Cache           *redis.Cache // 可为 nil，内存模式下没有 Redis
	Logger          *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// 使用自定义中间件替代默认中间件
	router.Use(middleware.RecoveryHandler(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.BodySizeLimit(middleware.DefaultBodyLimit))

	// 监控中间件
	if deps.Metrics != nil {
		mm := middleware.NewMonitoringMiddleware(deps.Metrics, log)
		router.Use(mm.HTTPMetrics())
		router.Use(mm.BusinessMetrics())
		router.Use(mm.RateLimitMetrics())
	}

	// CORS 配置
	corsConfig := gincors.Config{
		AllowOrigins: deps.Config.CORS.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	// 创建处理器
	authHandler := NewAuthHandler(deps.AuthService, deps.JWTManager, deps.ActivityService, log)
	emailHandler := NewEmailHandler(deps.SearchService, deps.EmailService, deps.ActivityService, log)
	commentHandler := NewCommentHandler(deps.CommentService, deps.EmailService, deps.ActivityService, log)
	activityHandler := NewActivityHandler(deps.ActivityService, log)
	userHandler := NewUserHandler(deps.UserService, log)

	// 创建中间件
	jwtAuth := middleware.NewJWTAuth(deps.JWTManager, log)
	adminAuth := middleware.NewAdminAuth(deps.AuthService)

	// 登录与注册限流：多实例部署共用 Redis 计数，否则退回进程内令牌桶
	var loginLimit gin.HandlerFunc
	if deps.Cache != nil {
		loginLimit = middleware.RedisRateLimit(deps.Cache, "login", 10, time.Minute)
	} else {
		loginLimit = middleware.NewIPRateLimiter(rate.Every(6*time.Second), 10).Middleware()
	}

	// Swagger 文档
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.HealthChecker != nil {
		router.GET("/health/live", gin.WrapF(deps.HealthChecker.LiveEndpoint))
		router.GET("/health/ready", gin.WrapF(deps.HealthChecker.ReadyEndpoint))
	}

	// Prometheus 指标
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.HTTPHandler()))
	}

	// V1 API
	v1 := router.Group("/v1")
	{
		// ========== Auth Routes ==========
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", loginLimit, authHandler.Register)
			authRoutes.POST("/login", loginLimit, authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
			authRoutes.POST("/logout", jwtAuth.RequireAuth(), authHandler.Logout)
			authRoutes.GET("/me", jwtAuth.RequireAuth(), authHandler.Me)
		}

		// ========== Email Routes ==========
		emailRoutes := v1.Group("/emails")
		emailRoutes.Use(jwtAuth.RequireAuth())
		{
			emailRoutes.GET("/search", emailHandler.Search)
			emailRoutes.GET("/types", emailHandler.ListTypes)
			emailRoutes.GET("/:id", emailHandler.View)

			// 评论
			emailRoutes.GET("/:id/comments", commentHandler.List)
			emailRoutes.POST("/:id/comments", middleware.BodySizeLimit(middleware.SmallBodyLimit), commentHandler.Add)
		}

		// ========== Activity Routes ==========
		// 权限检查在处理器内完成，拒绝访问也要留下活动记录
		v1.GET("/activity", jwtAuth.RequireAuth(), activityHandler.List)

		// ========== Admin Routes ==========
		v1.GET("/users", jwtAuth.RequireAuth(), adminAuth.RequireAdmin(), userHandler.List)
	}

	return router
}
