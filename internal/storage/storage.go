package storage

import (
	"errors"

	"mailarchive/backend/internal/domain"
)

var (
	// ErrEmailNotFound 邮件未找到错误
	ErrEmailNotFound = errors.New("email not found")
	// ErrCommentNotFound 评论未找到错误
	ErrCommentNotFound = errors.New("comment not found")
	// ErrUserNotFound 用户未找到错误
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameExists 用户名已存在错误
	ErrUsernameExists = errors.New("username already exists")
)

// EmailRepository 定义归档邮件数据存取操作。
type EmailRepository interface {
	SaveEmail(email *domain.Email) error
	GetEmail(id string) (*domain.Email, error)
	ListEmailsByIDs(ids []string) ([]domain.Email, error) // 批量确认引用目标
	SearchEmails(criteria domain.EmailSearchCriteria) (*domain.EmailSearchResult, error)
	ListEmailTypes() ([]string, error)
}

// CommentRepository 定义评论数据存取操作。
type CommentRepository interface {
	CreateComment(comment *domain.Comment) error
	GetComment(id int) (*domain.Comment, error)
	ListCommentsByEmail(emailID string) ([]domain.Comment, error)
	CountCommentsByEmail(emailID string) (int, error)
}

// ActivityRepository 定义活动日志存取操作（只追加）。
type ActivityRepository interface {
	AppendActivity(activity *domain.UserActivity) error
	SearchActivities(criteria domain.ActivitySearchCriteria) (*domain.ActivitySearchResult, error)
}

// UserRepository 定义用户数据存取操作。
type UserRepository interface {
	CreateUser(user *domain.User) error
	GetUserByID(id string) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
	UpdateUser(user *domain.User) error
	UpdateLastLogin(userID string) error
	ListUsers() ([]domain.User, error)
}

// Store 定义完整的存储接口。
type Store interface {
	EmailRepository
	CommentRepository
	ActivityRepository
	UserRepository

	// 工具方法
	Close() error
	Health() error
}
