// Package memory 提供内存存储实现，语义与 SQL 存储保持一致，
// 用于测试和本地开发。
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage"
)

// Store 内存存储实现
type Store struct {
	mu sync.RWMutex

	emails     map[string]domain.Email // unique_email_id -> email
	comments   map[int]domain.Comment  // id -> comment
	activities []domain.UserActivity
	users      map[string]domain.User // id -> user

	nextCommentID int
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		emails:        make(map[string]domain.Email),
		comments:      make(map[int]domain.Comment),
		users:         make(map[string]domain.User),
		nextCommentID: 1,
	}
}

// Close 关闭存储（内存实现为空操作）
func (s *Store) Close() error {
	return nil
}

// Health 检查存储健康状态
func (s *Store) Health() error {
	return nil
}

// ========== Email Repository ==========

// SaveEmail 保存归档邮件
func (s *Store) SaveEmail(email *domain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if email.CreatedAt.IsZero() {
		email.CreatedAt = time.Now().UTC()
	}
	s.emails[email.UniqueEmailID] = *email
	return nil
}

// GetEmail 根据唯一标识获取邮件
func (s *Store) GetEmail(id string) (*domain.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.emails[id]
	if !ok {
		return nil, storage.ErrEmailNotFound
	}
	return &email, nil
}

// ListEmailsByIDs 批量获取邮件，不存在的 ID 被静默跳过
func (s *Store) ListEmailsByIDs(ids []string) ([]domain.Email, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Email
	for _, id := range ids {
		if email, ok := s.emails[id]; ok {
			out = append(out, email)
		}
	}
	return out, nil
}

// ListEmailTypes 返回库中出现过的邮件类别
func (s *Store) ListEmailTypes() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	for _, email := range s.emails {
		seen[string(email.EmailType)] = true
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types, nil
}

// ========== Comment Repository ==========

// CreateComment 创建评论并分配自增 ID
func (s *Store) CreateComment(comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = s.nextCommentID
	s.nextCommentID++
	if comment.Timestamp.IsZero() {
		comment.Timestamp = time.Now().UTC()
	}
	s.comments[comment.ID] = *comment
	return nil
}

// GetComment 根据 ID 获取评论
func (s *Store) GetComment(id int) (*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrCommentNotFound
	}
	return &comment, nil
}

// ListCommentsByEmail 返回邮件的全部评论，按时间正序
func (s *Store) ListCommentsByEmail(emailID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Comment
	for _, comment := range s.comments {
		if comment.EmailID == emailID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// CountCommentsByEmail 统计邮件的评论数
func (s *Store) CountCommentsByEmail(emailID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, comment := range s.comments {
		if comment.EmailID == emailID {
			count++
		}
	}
	return count, nil
}

// hasComments 判断邮件是否存在评论（调用方需持有读锁）
func (s *Store) hasComments(emailID string) bool {
	for _, comment := range s.comments {
		if comment.EmailID == emailID {
			return true
		}
	}
	return false
}

// ========== Activity Repository ==========

// AppendActivity 追加活动记录
func (s *Store) AppendActivity(activity *domain.UserActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now().UTC()
	}
	s.activities = append(s.activities, *activity)
	return nil
}

// ========== User Repository ==========

// CreateUser 创建用户，用户名重复时报错
func (s *Store) CreateUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return storage.ErrUsernameExists
		}
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

// GetUserByID 根据 ID 获取用户
func (s *Store) GetUserByID(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &user, nil
}

// GetUserByUsername 根据用户名获取用户
func (s *Store) GetUserByUsername(username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

// UpdateUser 更新用户信息
func (s *Store) UpdateUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

// UpdateLastLogin 更新最近登录时间
func (s *Store) UpdateLastLogin(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	now := time.Now().UTC()
	user.LastLoginAt = &now
	s.users[userID] = user
	return nil
}

// ListUsers 返回全部用户，按用户名排序
func (s *Store) ListUsers() ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}
