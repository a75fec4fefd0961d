package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage"
)

// Store SQL 数据库存储实现（支持 PostgreSQL 和 MySQL 5.7+）
type Store struct {
	db         *gorm.DB
	sqlDB      *sql.DB
	driverName string // "postgres" or "mysql"
}

// NewStore 创建 PostgreSQL 存储实例
func NewStore(dsn string) (*Store, error) {
	return newStore("postgres", dsn)
}

// NewMySQLStore 创建 MySQL 存储实例
func NewMySQLStore(dsn string) (*Store, error) {
	return newStore("mysql", dsn)
}

// newStore 先用 database/sql 建立连接池，再在既有连接上初始化 GORM
func newStore(driverName, dsn string) (*Store, error) {
	if driverName != "postgres" && driverName != "mysql" {
		return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, mysql)", driverName)
	}

	// 打开数据库连接
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 设置连接池参数
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// 配置 GORM
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // 静默模式
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var db *gorm.DB
	if driverName == "postgres" {
		db, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), config)
	} else {
		db, err = gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), config)
	}
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize GORM: %w", err)
	}

	store := &Store{db: db, sqlDB: sqlDB, driverName: driverName}

	// 自动迁移数据库表
	if err := store.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate 自动迁移数据库表结构
func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&domain.User{},
		&domain.Email{},
		&domain.Comment{},
		&domain.UserActivity{},
	)
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.sqlDB != nil {
		return s.sqlDB.Close()
	}
	return nil
}

// Health 检查数据库健康状态
func (s *Store) Health() error {
	if s.sqlDB == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.sqlDB.Ping()
}

// ========== Email Repository ==========

// SaveEmail 保存归档邮件
func (s *Store) SaveEmail(email *domain.Email) error {
	return s.db.Save(email).Error
}

// GetEmail 根据唯一标识获取邮件
func (s *Store) GetEmail(id string) (*domain.Email, error) {
	var email domain.Email
	err := s.db.Where("unique_email_id = ?", id).First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, storage.ErrEmailNotFound
		}
		return nil, err
	}
	return &email, nil
}

// ListEmailsByIDs 批量获取邮件，用于一次性确认引用目标，
// 不存在的 ID 被静默跳过
func (s *Store) ListEmailsByIDs(ids []string) ([]domain.Email, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var emails []domain.Email
	if err := s.db.Where("unique_email_id IN ?", ids).Find(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

// ListEmailTypes 返回库中出现过的邮件类别
func (s *Store) ListEmailTypes() ([]string, error) {
	var types []string
	err := s.db.Model(&domain.Email{}).
		Distinct("email_type").
		Order("email_type ASC").
		Pluck("email_type", &types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

// ========== Comment Repository ==========

// CreateComment 创建评论
func (s *Store) CreateComment(comment *domain.Comment) error {
	return s.db.Create(comment).Error
}

// GetComment 根据 ID 获取评论
func (s *Store) GetComment(id int) (*domain.Comment, error) {
	var comment domain.Comment
	err := s.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, storage.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListCommentsByEmail 返回邮件的全部评论（含回复），按时间正序
func (s *Store) ListCommentsByEmail(emailID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := s.db.Where("email_id = ?", emailID).
		Order("timestamp ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountCommentsByEmail 统计邮件的评论数
func (s *Store) CountCommentsByEmail(emailID string) (int, error) {
	var count int64
	err := s.db.Model(&domain.Comment{}).Where("email_id = ?", emailID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ========== Activity Repository ==========

// AppendActivity 追加活动记录
func (s *Store) AppendActivity(activity *domain.UserActivity) error {
	return s.db.Create(activity).Error
}

// ========== User Repository ==========

// CreateUser 创建用户
func (s *Store) CreateUser(user *domain.User) error {
	err := s.db.Create(user).Error
	if err != nil {
		var existing domain.User
		if s.db.Where("username = ?", user.Username).First(&existing).Error == nil {
			return storage.ErrUsernameExists
		}
		return err
	}
	return nil
}

// GetUserByID 根据 ID 获取用户
func (s *Store) GetUserByID(id string) (*domain.User, error) {
	var user domain.User
	err := s.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 根据用户名获取用户
func (s *Store) GetUserByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser 更新用户信息
func (s *Store) UpdateUser(user *domain.User) error {
	return s.db.Save(user).Error
}

// UpdateLastLogin 更新最近登录时间
func (s *Store) UpdateLastLogin(userID string) error {
	now := time.Now().UTC()
	return s.db.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("last_login_at", now).Error
}

// ListUsers 返回全部用户，按用户名排序
func (s *Store) ListUsers() ([]domain.User, error) {
	var users []domain.User
	if err := s.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
