package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mailarchive/backend/internal/auth"
	"mailarchive/backend/internal/cache"
	"mailarchive/backend/internal/domain"
)

// roleCacheTTL 角色查询的本地缓存有效期
const roleCacheTTL = time.Minute

// AdminAuth 管理员权限中间件
//
// 角色以数据库为准，令牌里的 role 只是快照；
// 查询结果在本地缓存一分钟，降级操作最多延迟一分钟生效。
type AdminAuth struct {
	authService *auth.Service
	userCache   *cache.LocalCache
}

// NewAdminAuth 创建管理员权限中间件
func NewAdminAuth(authService *auth.Service) *AdminAuth {
	return &AdminAuth{
		authService: authService,
		userCache:   cache.NewLocalCache(1024, roleCacheTTL),
	}
}

// RequireAdmin 要求管理员权限
func (a *AdminAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.currentUser(c)
		if !ok {
			return
		}

		// 检查是否为管理员
		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set("user", user)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

// RequireRole 要求特定角色
func (a *AdminAuth) RequireRole(allowedRoles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.currentUser(c)
		if !ok {
			return
		}

		// 检查角色是否允许
		allowed := false
		for _, role := range allowedRoles {
			if user.Role == role {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

// currentUser 取出当前用户，失败时写入响应并中止
func (a *AdminAuth) currentUser(c *gin.Context) (*domain.User, bool) {
	// 从上下文获取用户ID（由JWT中间件设置）
	userIDVal, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		c.Abort()
		return nil, false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user context"})
		c.Abort()
		return nil, false
	}

	if cached, ok := a.userCache.Get(userID); ok {
		if user, ok := cached.(*domain.User); ok {
			return user, true
		}
	}

	user, err := a.authService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		c.Abort()
		return nil, false
	}

	a.userCache.Set(userID, user, roleCacheTTL)
	return user, true
}
