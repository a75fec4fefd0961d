package service

import (
	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/reference"
)

// EmailService 邮件查看服务
type EmailService struct {
	store    domain.Store
	resolver *reference.Resolver
	comments *CommentService
}

// NewEmailService 创建邮件查看服务
func NewEmailService(store domain.Store, comments *CommentService) *EmailService {
	return &EmailService{
		store:    store,
		resolver: reference.NewResolver(store),
		comments: comments,
	}
}

// EmailView 单封邮件的完整视图
//
// Body 是改写后的正文：确认存在的交叉引用被包装为链接。
// ReferencedEmails 按正文首次出现顺序排列，供前端渲染
// 折叠面板。
type EmailView struct {
	Email            domain.Email         `json:"email"`
	Body             string               `json:"body"`
	ReferencedEmails []domain.Email       `json:"referencedEmails"`
	Comments         []domain.CommentNode `json:"comments"`
	CommentCount     int                  `json:"commentCount"`
}

// Get 获取单封邮件
//
// 归档对所有登录用户整体可见，不按归属用户过滤，
// 否则引用面板里他人的邮件将无法点开。
func (s *EmailService) Get(emailID string) (*domain.Email, error) {
	return s.store.GetEmail(emailID)
}

// View 组装单封邮件的查看视图
//
// 正文每次查看都重新扫描，引用缓存列只用于检索筛选，
// 不参与展示。
func (s *EmailService) View(emailID string) (*EmailView, error) {
	email, err := s.Get(emailID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(email.Body)
	if err != nil {
		return nil, err
	}

	thread, err := s.comments.ListThread(emailID)
	if err != nil {
		return nil, err
	}

	count, err := s.store.CountCommentsByEmail(emailID)
	if err != nil {
		return nil, err
	}

	return &EmailView{
		Email:            *email,
		Body:             resolved.Body,
		ReferencedEmails: resolved.Emails,
		Comments:         thread,
		CommentCount:     count,
	}, nil
}
