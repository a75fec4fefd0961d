// Package hybrid 组合 SQL 存储与 Redis 缓存：写入落库并回填缓存，
// 热点读取先查缓存，未命中回落到数据库。
package hybrid

import (
	"fmt"
	"time"

	"mailarchive/backend/internal/config"
	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage/postgres"
	"mailarchive/backend/internal/storage/redis"
)

// 缓存过期时间
const (
	emailCacheTTL = 24 * time.Hour
	userCacheTTL  = 1 * time.Hour
	typesCacheTTL = 12 * time.Hour
)

// Store 混合存储实现，结合 SQL 数据库和 Redis
type Store struct {
	db    *postgres.Store
	cache *redis.Cache
}

// NewStore 创建混合存储实例
func NewStore(dbType, dsn string, redisCfg *config.RedisConfig) (*Store, error) {
	var dbStore *postgres.Store
	var err error

	// 根据数据库类型创建存储
	switch dbType {
	case "mysql":
		dbStore, err = postgres.NewMySQLStore(dsn)
	case "postgres", "postgresql":
		dbStore, err = postgres.NewStore(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s (supported: mysql, postgres)", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 初始化 Redis
	cache, err := redis.NewCache(redisCfg)
	if err != nil {
		dbStore.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	return &Store{
		db:    dbStore,
		cache: cache,
	}, nil
}

// Cache 返回底层缓存，供中间件等直接使用（黑名单、限流）
func (s *Store) Cache() *redis.Cache {
	return s.cache
}

// ========== Email Repository ==========

// SaveEmail 保存归档邮件并回填缓存
func (s *Store) SaveEmail(email *domain.Email) error {
	if err := s.db.SaveEmail(email); err != nil {
		return err
	}

	// 缓存失败不影响写入结果
	s.cache.CacheEmail(email, emailCacheTTL)
	return nil
}

// GetEmail 根据唯一标识获取邮件，先查缓存
func (s *Store) GetEmail(id string) (*domain.Email, error) {
	if email, err := s.cache.GetCachedEmail(id); err == nil {
		return email, nil
	}

	email, err := s.db.GetEmail(id)
	if err != nil {
		return nil, err
	}

	s.cache.CacheEmail(email, emailCacheTTL)
	return email, nil
}

// ListEmailsByIDs 批量获取邮件（引用确认每次都走数据库，保证一致）
func (s *Store) ListEmailsByIDs(ids []string) ([]domain.Email, error) {
	return s.db.ListEmailsByIDs(ids)
}

// SearchEmails 检索走数据库，结果集不缓存
func (s *Store) SearchEmails(criteria domain.EmailSearchCriteria) (*domain.EmailSearchResult, error) {
	return s.db.SearchEmails(criteria)
}

// ListEmailTypes 返回类别列表，先查缓存
func (s *Store) ListEmailTypes() ([]string, error) {
	if types, err := s.cache.GetCachedEmailTypes(); err == nil {
		return types, nil
	}

	types, err := s.db.ListEmailTypes()
	if err != nil {
		return nil, err
	}

	s.cache.CacheEmailTypes(types, typesCacheTTL)
	return types, nil
}

// ========== Comment Repository ==========

// CreateComment 创建评论
func (s *Store) CreateComment(comment *domain.Comment) error {
	return s.db.CreateComment(comment)
}

// GetComment 根据 ID 获取评论
func (s *Store) GetComment(id int) (*domain.Comment, error) {
	return s.db.GetComment(id)
}

// ListCommentsByEmail 返回邮件的全部评论
func (s *Store) ListCommentsByEmail(emailID string) ([]domain.Comment, error) {
	return s.db.ListCommentsByEmail(emailID)
}

// CountCommentsByEmail 统计邮件的评论数
func (s *Store) CountCommentsByEmail(emailID string) (int, error) {
	return s.db.CountCommentsByEmail(emailID)
}

// ========== Activity Repository ==========

// AppendActivity 追加活动记录（只追加，不缓存）
func (s *Store) AppendActivity(activity *domain.UserActivity) error {
	return s.db.AppendActivity(activity)
}

// SearchActivities 检索活动记录
func (s *Store) SearchActivities(criteria domain.ActivitySearchCriteria) (*domain.ActivitySearchResult, error) {
	return s.db.SearchActivities(criteria)
}

// ========== User Repository ==========

// CreateUser 创建用户
func (s *Store) CreateUser(user *domain.User) error {
	return s.db.CreateUser(user)
}

// GetUserByID 根据 ID 获取用户，先查缓存
func (s *Store) GetUserByID(id string) (*domain.User, error) {
	if user, err := s.cache.GetCachedUser(id); err == nil {
		return user, nil
	}

	user, err := s.db.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	s.cache.CacheUser(user, userCacheTTL)
	return user, nil
}

// GetUserByUsername 根据用户名获取用户（登录路径不走缓存）
func (s *Store) GetUserByUsername(username string) (*domain.User, error) {
	return s.db.GetUserByUsername(username)
}

// UpdateUser 更新用户信息并失效缓存
func (s *Store) UpdateUser(user *domain.User) error {
	if err := s.db.UpdateUser(user); err != nil {
		return err
	}
	s.cache.DeleteCachedUser(user.ID)
	return nil
}

// UpdateLastLogin 更新最近登录时间并失效缓存
func (s *Store) UpdateLastLogin(userID string) error {
	if err := s.db.UpdateLastLogin(userID); err != nil {
		return err
	}
	s.cache.DeleteCachedUser(userID)
	return nil
}

// ListUsers 返回全部用户
func (s *Store) ListUsers() ([]domain.User, error) {
	return s.db.ListUsers()
}

// ========== 工具方法 ==========

// Close 关闭数据库与缓存连接
func (s *Store) Close() error {
	cacheErr := s.cache.Close()
	dbErr := s.db.Close()
	if dbErr != nil {
		return dbErr
	}
	return cacheErr
}

// Health 检查数据库健康状态
func (s *Store) Health() error {
	return s.db.Health()
}
