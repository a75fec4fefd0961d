package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"mailarchive/backend/internal/auth"
	"mailarchive/backend/internal/config"
	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage"
	"mailarchive/backend/internal/storage/postgres"
)

// main 创建或提升管理员账号，直连数据库执行。
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: create-admin <username> <password> [email]")
		os.Exit(1)
	}

	username := os.Args[1]
	password := os.Args[2]
	email := ""
	if len(os.Args) >= 4 {
		email = os.Args[3]
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Database.Type == "" || cfg.Database.DSN == "" {
		fmt.Println("No database configured. Set MAILARCHIVE_DATABASE_TYPE and MAILARCHIVE_DATABASE_DSN.")
		os.Exit(1)
	}

	// 连接数据库
	var store *postgres.Store
	if cfg.Database.Type == "mysql" {
		store, err = postgres.NewMySQLStore(cfg.Database.DSN)
	} else {
		store, err = postgres.NewStore(cfg.Database.DSN)
	}
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// 验证用户名与密码
	if err := domain.ValidateUsername(username); err != nil {
		fmt.Printf("Invalid username: %v\n", err)
		os.Exit(1)
	}
	if err := domain.ValidatePassword(password); err != nil {
		fmt.Printf("Invalid password: %v\n", err)
		os.Exit(1)
	}

	// 已存在则提升为管理员
	if existing, err := store.GetUserByUsername(username); err == nil {
		existing.Role = domain.RoleAdmin
		existing.UpdatedAt = time.Now()
		if err := store.UpdateUser(existing); err != nil {
			fmt.Printf("Failed to promote user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Existing user %q promoted to admin\n", username)
		return
	} else if err != storage.ErrUserNotFound {
		fmt.Printf("Failed to look up user: %v\n", err)
		os.Exit(1)
	}

	// 哈希密码
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	// 创建管理员用户
	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := store.CreateUser(user); err != nil {
		fmt.Printf("Failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Admin user created successfully!\n")
	fmt.Printf("  ID:       %s\n", user.ID)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Role:     %s\n", user.Role)
}
