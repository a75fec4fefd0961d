package memory

import (
	"sort"
	"strings"

	"mailarchive/backend/internal/domain"
)

// 分页默认值，与 SQL 实现保持一致
const (
	defaultEmailPageSize    = 50
	maxEmailPageSize        = 200
	defaultActivityPageSize = 25
	maxActivityPageSize     = 200
)

// SearchEmails 按筛选规格检索邮件
func (s *Store) SearchEmails(criteria domain.EmailSearchCriteria) (*domain.EmailSearchResult, error) {
	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.PageSize <= 0 {
		criteria.PageSize = defaultEmailPageSize
	}
	if criteria.PageSize > maxEmailPageSize {
		criteria.PageSize = maxEmailPageSize
	}

	s.mu.RLock()
	var matched []domain.Email
	for _, email := range s.emails {
		if s.matchesFilter(email, criteria.Filter) {
			matched = append(matched, email)
		}
	}
	s.mu.RUnlock()

	sortEmails(matched, criteria.Sort)

	total := len(matched)
	page := paginate(total, criteria.Page, criteria.PageSize)
	return &domain.EmailSearchResult{
		Emails:     matched[page.start:page.end],
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages(total, criteria.PageSize),
	}, nil
}

// matchesFilter 判断邮件是否满足全部筛选条件（调用方需持有读锁）
func (s *Store) matchesFilter(email domain.Email, filter domain.EmailFilter) bool {
	body := strings.ToLower(email.Body)

	// 松散关键词：命中任意一个即可
	if len(filter.LooseTerms) > 0 {
		hit := false
		for _, term := range filter.LooseTerms {
			if strings.Contains(body, strings.ToLower(term)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	// 精确短语：全部都要命中
	for _, phrase := range filter.ExactPhrases {
		if !strings.Contains(body, strings.ToLower(phrase)) {
			return false
		}
	}

	// 排除词：命中任何一个则剔除
	for _, term := range filter.ExclusionTerms {
		if strings.Contains(body, strings.ToLower(term)) {
			return false
		}
	}

	if filter.Sender != "" {
		sender := strings.ToLower(filter.Sender)
		if !strings.Contains(strings.ToLower(email.SenderName), sender) {
			return false
		}
	}

	if filter.EmailType != "" && email.EmailType != filter.EmailType {
		return false
	}

	if filter.DateFrom != nil && email.DateSent.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateBefore != nil && !email.DateSent.Before(*filter.DateBefore) {
		return false
	}

	if filter.HasReferences && !email.HasReferences() {
		return false
	}

	if filter.HasComments && !s.hasComments(email.UniqueEmailID) {
		return false
	}

	return true
}

// sortEmails 按排序规格排列，排序列在领域层已经过白名单校验
func sortEmails(emails []domain.Email, spec domain.SortSpec) {
	less := func(a, b domain.Email) bool {
		switch spec.Column {
		case "unique_email_id":
			return a.UniqueEmailID < b.UniqueEmailID
		case "sender_name":
			return a.SenderName < b.SenderName
		case "sender_email":
			return a.SenderEmail < b.SenderEmail
		case "title":
			return a.Title < b.Title
		case "email_type":
			return a.EmailType < b.EmailType
		default: // date_sent
			return a.DateSent.Before(b.DateSent)
		}
	}
	sort.SliceStable(emails, func(i, j int) bool {
		if spec.Descending {
			return less(emails[j], emails[i])
		}
		return less(emails[i], emails[j])
	})
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

	s.mu.RLock()
	var matched []domain.UserActivity
	for _, activity := range s.activities {
		if criteria.UserID == "" || activity.UserID == criteria.UserID {
			matched = append(matched, activity)
		}
	}
	s.mu.RUnlock()

	sortActivities(matched, criteria.Sort)

	total := len(matched)
	page := paginate(total, criteria.Page, criteria.PageSize)
	return &domain.ActivitySearchResult{
		Activities: matched[page.start:page.end],
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages(total, criteria.PageSize),
	}, nil
}

// sortActivities 按排序规格排列活动记录
func sortActivities(activities []domain.UserActivity, spec domain.SortSpec) {
	less := func(a, b domain.UserActivity) bool {
		switch spec.Column {
		case "user_id":
			return a.UserID < b.UserID
		case "activity":
			return a.Activity < b.Activity
		default: // timestamp
			return a.Timestamp.Before(b.Timestamp)
		}
	}
	sort.SliceStable(activities, func(i, j int) bool {
		if spec.Descending {
			return less(activities[j], activities[i])
		}
		return less(activities[i], activities[j])
	})
}

// pageBounds 当前页在结果集中的半开区间
type pageBounds struct {
	start, end int
}

// paginate 计算切片边界，越界页返回空区间
func paginate(total, page, pageSize int) pageBounds {
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return pageBounds{start: start, end: end}
}

// totalPages 计算总页数
func totalPages(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}
