package service

import (
	"errors"
	"sort"
	"time"

	"mailarchive/backend/internal/domain"
)

var (
	// ErrParentNotFound 回复的目标评论不存在
	ErrParentNotFound = errors.New("parent comment not found")
	// ErrParentMismatch 回复的目标评论属于另一封邮件
	ErrParentMismatch = errors.New("parent comment belongs to a different email")
)

// CommentService 评论服务
type CommentService struct {
	store domain.Store
}

// NewCommentService 创建评论服务
func NewCommentService(store domain.Store) *CommentService {
	return &CommentService{
		store: store,
	}
}

// AddCommentInput 发表评论输入
type AddCommentInput struct {
	UserID   string
	EmailID  string
	Body     string
	ParentID *int // 非空表示回复
}

// Add 发表评论或回复
//
// 回复必须指向同一封邮件下已存在的评论。
func (s *CommentService) Add(input AddCommentInput) (*domain.Comment, error) {
	if err := domain.ValidateCommentBody(input.Body); err != nil {
		return nil, err
	}

	// 目标邮件必须存在
	if _, err := s.store.GetEmail(input.EmailID); err != nil {
		return nil, err
	}

	// 回复时校验父评论
	if input.ParentID != nil {
		parent, err := s.store.GetComment(*input.ParentID)
		if err != nil {
			return nil, ErrParentNotFound
		}
		if parent.EmailID != input.EmailID {
			return nil, ErrParentMismatch
		}
	}

	comment := &domain.Comment{
		Body:      input.Body,
		Timestamp: time.Now(),
		UserID:    input.UserID,
		EmailID:   input.EmailID,
		ParentID:  input.ParentID,
	}

	if err := s.store.CreateComment(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListThread 组装一封邮件的评论树
//
// 顶层评论按时间倒序，回复按时间正序。父评论已不存在的
// 回复提升为顶层，不丢数据。
func (s *CommentService) ListThread(emailID string) ([]domain.CommentNode, error) {
	comments, err := s.store.ListCommentsByEmail(emailID)
	if err != nil {
		return nil, err
	}

	authors := s.resolveAuthors(comments)
	return buildThread(comments, authors), nil
}

// resolveAuthors 把评论作者 ID 映射为用户名，查不到的留空
func (s *CommentService) resolveAuthors(comments []domain.Comment) map[string]string {
	authors := make(map[string]string)
	for _, c := range comments {
		if _, ok := authors[c.UserID]; ok {
			continue
		}
		name := ""
		if user, err := s.store.GetUserByID(c.UserID); err == nil {
			name = user.Username
		}
		authors[c.UserID] = name
	}
	return authors
}

// buildThread 由平铺列表一次性索引构建评论树
func buildThread(comments []domain.Comment, authors map[string]string) []domain.CommentNode {
	known := make(map[int]bool, len(comments))
	for _, c := range comments {
		known[c.ID] = true
	}

	children := make(map[int][]int)
	var roots []int
	for i, c := range comments {
		if c.ParentID != nil && known[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], i)
		} else {
			roots = append(roots, i)
		}
	}

	var build func(i int) domain.CommentNode
	build = func(i int) domain.CommentNode {
		c := comments[i]
		node := domain.CommentNode{
			Comment: c,
			Author:  authors[c.UserID],
			Replies: []domain.CommentNode{},
		}
		kids := children[c.ID]
		sort.SliceStable(kids, func(a, b int) bool {
			return comments[kids[a]].Timestamp.Before(comments[kids[b]].Timestamp)
		})
		for _, k := range kids {
			node.Replies = append(node.Replies, build(k))
		}
		return node
	}

	sort.SliceStable(roots, func(a, b int) bool {
		return comments[roots[a]].Timestamp.After(comments[roots[b]].Timestamp)
	})

	thread := make([]domain.CommentNode, 0, len(roots))
	for _, i := range roots {
		thread = append(thread, build(i))
	}
	return thread
}
