// Package redis 提供 Redis 读穿缓存，加速热点邮件与用户的读取。
// 缓存不是权威数据源，任何未命中都回落到 SQL 存储。
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mailarchive/backend/internal/config"
	"mailarchive/backend/internal/domain"
)

// Cache Redis 缓存实现
type Cache struct {
	client *redis.Client
	ctx    context.Context
}

// NewCache 创建 Redis 缓存实例
func NewCache(cfg *config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx := context.Background()

	// 测试连接
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{
		client: client,
		ctx:    ctx,
	}, nil
}

// ========== 邮件缓存 ==========

// CacheEmail 缓存归档邮件
func (c *Cache) CacheEmail(email *domain.Email, ttl time.Duration) error {
	key := fmt.Sprintf("email:%s", email.UniqueEmailID)
	data, err := json.Marshal(email)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, key, data, ttl).Err()
}

// GetCachedEmail 获取缓存的邮件
func (c *Cache) GetCachedEmail(id string) (*domain.Email, error) {
	key := fmt.Sprintf("email:%s", id)
	data, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("email not found in cache")
		}
		return nil, err
	}

	var email domain.Email
	if err := json.Unmarshal([]byte(data), &email); err != nil {
		return nil, err
	}

	return &email, nil
}

// DeleteCachedEmail 删除缓存的邮件
func (c *Cache) DeleteCachedEmail(id string) error {
	key := fmt.Sprintf("email:%s", id)
	return c.client.Del(c.ctx, key).Err()
}

// ========== 邮件类别缓存 ==========

// CacheEmailTypes 缓存类别列表（类别集合几乎不变，适合长 TTL）
func (c *Cache) CacheEmailTypes(types []string, ttl time.Duration) error {
	data, err := json.Marshal(types)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, "email:types", data, ttl).Err()
}

// GetCachedEmailTypes 获取缓存的类别列表
func (c *Cache) GetCachedEmailTypes() ([]string, error) {
	data, err := c.client.Get(c.ctx, "email:types").Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("email types not found in cache")
		}
		return nil, err
	}

	var types []string
	if err := json.Unmarshal([]byte(data), &types); err != nil {
		return nil, err
	}

	return types, nil
}

// ========== 用户缓存 ==========

// CacheUser 缓存用户信息
func (c *Cache) CacheUser(user *domain.User, ttl time.Duration) error {
	key := fmt.Sprintf("user:%s", user.ID)
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, key, data, ttl).Err()
}

// GetCachedUser 获取缓存的用户信息
func (c *Cache) GetCachedUser(userID string) (*domain.User, error) {
	key := fmt.Sprintf("user:%s", userID)
	data, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("user not found in cache")
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteCachedUser 删除缓存的用户信息
func (c *Cache) DeleteCachedUser(userID string) error {
	key := fmt.Sprintf("user:%s", userID)
	return c.client.Del(c.ctx, key).Err()
}

// ========== JWT 黑名单 ==========

// AddToBlacklist 将 JWT 添加到黑名单（登出后令牌立即失效）
func (c *Cache) AddToBlacklist(jti string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", jti)
	return c.client.Set(c.ctx, key, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT 是否在黑名单中
func (c *Cache) IsBlacklisted(jti string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", jti)
	_, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ========== 限流缓存 ==========

// IncrementRateLimit 增加限流计数
func (c *Cache) IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := c.client.Pipeline()

	// 增加计数
	incr := pipe.Incr(c.ctx, key)

	// 设置过期时间（如果是新键）
	pipe.Expire(c.ctx, key, window)

	_, err := pipe.Exec(c.ctx)
	if err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

// GetRateLimit 获取限流计数
func (c *Cache) GetRateLimit(key string) (int64, error) {
	count, err := c.client.Get(c.ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// ========== 会话缓存 ==========

// CacheSession 缓存会话令牌到用户的映射
func (c *Cache) CacheSession(sessionToken string, userID string, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", sessionToken)
	return c.client.Set(c.ctx, key, userID, ttl).Err()
}

// GetCachedSession 获取缓存的会话
func (c *Cache) GetCachedSession(sessionToken string) (string, error) {
	key := fmt.Sprintf("session:%s", sessionToken)
	userID, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("session not found in cache")
		}
		return "", err
	}
	return userID, nil
}

// DeleteCachedSession 删除缓存的会话
func (c *Cache) DeleteCachedSession(sessionToken string) error {
	key := fmt.Sprintf("session:%s", sessionToken)
	return c.client.Del(c.ctx, key).Err()
}

// ========== 工具方法 ==========

// Ping 测试 Redis 连接
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Delete 删除键
func (c *Cache) Delete(key string) error {
	return c.client.Del(c.ctx, key).Err()
}

// Exists 检查键是否存在
func (c *Cache) Exists(key string) (bool, error) {
	count, err := c.client.Exists(c.ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Close 关闭 Redis 连接
func (c *Cache) Close() error {
	return c.client.Close()
}
