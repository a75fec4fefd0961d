package service

import (
	"mailarchive/backend/internal/domain"
)

// UserService 用户管理服务（管理员用）
type UserService struct {
	store domain.Store
}

// NewUserService 创建用户管理服务
func NewUserService(store domain.Store) *UserService {
	return &UserService{
		store: store,
	}
}

// ListUsers 列出全部用户
func (s *UserService) ListUsers() ([]domain.User, error) {
	return s.store.ListUsers()
}
