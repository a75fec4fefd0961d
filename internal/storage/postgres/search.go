package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"mailarchive/backend/internal/domain"
)

// 分页默认值
const (
	defaultEmailPageSize    = 50
	maxEmailPageSize        = 200
	defaultActivityPageSize = 25
	maxActivityPageSize     = 200
)

// likePattern 生成不区分大小写的子串匹配模式
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// SearchEmails 按筛选规格检索邮件
//
// 筛选规格一次性翻译为查询条件：松散关键词之间是 OR，
// 精确短语和排除词逐个 AND。先统计总数再取当前页。
func (s *Store) SearchEmails(criteria domain.EmailSearchCriteria) (*domain.EmailSearchResult, error) {
	// 设置默认分页参数
	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.PageSize <= 0 {
		criteria.PageSize = defaultEmailPageSize
	}
	if criteria.PageSize > maxEmailPageSize {
		criteria.PageSize = maxEmailPageSize
	}

	query := s.buildEmailQuery(criteria.Filter)

	// 获取总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count emails: %w", err)
	}

	// 分页查询
	var emails []domain.Email
	offset := (criteria.Page - 1) * criteria.PageSize
	if err := query.
		Order(orderClause(criteria.Sort)).
		Limit(criteria.PageSize).
		Offset(offset).
		Find(&emails).Error; err != nil {
		return nil, fmt.Errorf("failed to search emails: %w", err)
	}

	return &domain.EmailSearchResult{
		Emails:     emails,
		Total:      int(total),
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages(int(total), criteria.PageSize),
	}, nil
}

// buildEmailQuery 把筛选规格整体翻译为 GORM 查询
func (s *Store) buildEmailQuery(filter domain.EmailFilter) *gorm.DB {
	query := s.db.Model(&domain.Email{})

	// 松散关键词：正文命中任意一个即可
	if len(filter.LooseTerms) > 0 {
		conds := make([]string, 0, len(filter.LooseTerms))
		args := make([]interface{}, 0, len(filter.LooseTerms))
		for _, term := range filter.LooseTerms {
			conds = append(conds, "LOWER(body) LIKE ?")
			args = append(args, likePattern(term))
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}

	// 精确短语：全部都要命中
	for _, phrase := range filter.ExactPhrases {
		query = query.Where("LOWER(body) LIKE ?", likePattern(phrase))
	}

	// 排除词：命中任何一个则剔除
	for _, term := range filter.ExclusionTerms {
		query = query.Where("LOWER(body) NOT LIKE ?", likePattern(term))
	}

	// 发件人：名称的子串匹配
	if filter.Sender != "" {
		query = query.Where("LOWER(sender_name) LIKE ?", likePattern(filter.Sender))
	}

	// 类别精确匹配
	if filter.EmailType != "" {
		query = query.Where("email_type = ?", filter.EmailType)
	}

	// 时间范围：下界含，上界不含
	if filter.DateFrom != nil {
		query = query.Where("date_sent >= ?", *filter.DateFrom)
	}
	if filter.DateBefore != nil {
		query = query.Where("date_sent < ?", *filter.DateBefore)
	}

	// 引用缓存非空
	if filter.HasReferences {
		query = query.Where("refs IS NOT NULL AND LENGTH(refs) > 0")
	}

	// 存在评论：EXISTS 子查询
	if filter.HasComments {
		query = query.Where("EXISTS (SELECT 1 FROM comments WHERE comments.email_id = emails.unique_email_id)")
	}

	return query
}

// SearchActivities 检索活动记录
func (s *Store) SearchActivities(criteria domain.ActivitySearchCriteria) (*domain.ActivitySearchResult, error) {
	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.PageSize <= 0 {
		criteria.PageSize = defaultActivityPageSize
	}
	if criteria.PageSize > maxActivityPageSize {
		criteria.PageSize = maxActivityPageSize
	}

	query := s.db.Model(&domain.UserActivity{})
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}

	var activities []domain.UserActivity
	offset := (criteria.Page - 1) * criteria.PageSize
	if err := query.
		Order(orderClause(criteria.Sort)).
		Limit(criteria.PageSize).
		Offset(offset).
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to search activities: %w", err)
	}

	return &domain.ActivitySearchResult{
		Activities: activities,
		Total:      int(total),
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages(int(total), criteria.PageSize),
	}, nil
}

// orderClause 拼接排序子句，排序列在领域层已经过白名单校验
func orderClause(sort domain.SortSpec) string {
	dir := "ASC"
	if sort.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", sort.Column, dir)
}

// totalPages 计算总页数
func totalPages(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}
