package service

import (
	"time"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/pagination"
	"mailarchive/backend/internal/query"
)

// SearchService 邮件检索服务
type SearchService struct {
	store domain.Store
}

// NewSearchService 创建检索服务
func NewSearchService(store domain.Store) *SearchService {
	return &SearchService{
		store: store,
	}
}

// SearchEmailsInput 邮件检索输入
type SearchEmailsInput struct {
	Query         string // 自由文本查询，支持 "短语" 与 -排除词
	Sender        string // 发件人名称筛选（子串匹配）
	EmailType     string // 类别筛选
	StartDate     string // 起始日期，格式 2006-01-02
	EndDate       string // 结束日期（含当天），格式 2006-01-02
	DatePreset    string // 快捷区间: yesterday/week/month/year，优先于显式日期
	HasReferences bool   // 仅保留带引用的邮件
	HasComments   bool   // 仅保留有评论的邮件
	SortBy        string // 排序列
	SortOrder     string // asc/desc
	Page          int    // 页码
	PageSize      int    // 每页数量
}

// SearchEmails 检索邮件
//
// 返回值:
//   - *domain.EmailSearchResult: 检索结果
//   - *pagination.Pagination: 分页状态，用于生成页码导航
//   - error: 错误信息
func (s *SearchService) SearchEmails(input SearchEmailsInput) (*domain.EmailSearchResult, *pagination.Pagination, error) {
	// 解析自由文本查询
	parsed := query.Parse(input.Query)

	// 构建筛选规格
	filter := domain.EmailFilter{
		LooseTerms:     parsed.LooseTerms,
		ExactPhrases:   parsed.ExactPhrases,
		ExclusionTerms: parsed.ExclusionTerms,
		Sender:         input.Sender,
		EmailType:      domain.EmailType(input.EmailType),
		HasReferences:  input.HasReferences,
		HasComments:    input.HasComments,
	}
	filter.DateFrom, filter.DateBefore = dateRange(input.DatePreset, input.StartDate, input.EndDate, time.Now())

	criteria := domain.EmailSearchCriteria{
		Filter:   filter,
		Sort:     domain.NormalizeEmailSort(input.SortBy, input.SortOrder),
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	// 执行检索
	result, err := s.store.SearchEmails(criteria)
	if err != nil {
		return nil, nil, err
	}

	pg := pagination.New(result.Page, result.PageSize, result.Total)
	return result, &pg, nil
}

// ListEmailTypes 列出归档中出现过的邮件类别
func (s *SearchService) ListEmailTypes() ([]string, error) {
	return s.store.ListEmailTypes()
}

// dateRange 把快捷区间或显式日期翻译为半开区间 [from, before)
//
// 快捷区间非空时完全接管日期筛选，显式日期被忽略；
// 未知的快捷区间不加任何日期限制。快捷区间为空才走
// 显式日期，无法解析的日期静默忽略，结束日期含当天，
// 所以上界是次日零点。
func dateRange(preset, startDate, endDate string, now time.Time) (*time.Time, *time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if preset != "" {
		switch preset {
		case "yesterday":
			from := today.AddDate(0, 0, -1)
			return &from, &today
		case "week":
			from := today.AddDate(0, 0, -7)
			return &from, nil
		case "month":
			from := today.AddDate(0, 0, -30)
			return &from, nil
		case "year":
			from := today.AddDate(0, 0, -365)
			return &from, nil
		}
		return nil, nil
	}

	var from, before *time.Time
	if startDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", startDate, now.Location()); err == nil {
			from = &t
		}
	}
	if endDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", endDate, now.Location()); err == nil {
			b := t.AddDate(0, 0, 1)
			before = &b
		}
	}
	return from, before
}
