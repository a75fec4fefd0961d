package domain

import "time"

// EmailFilter 邮件检索的筛选规格
//
// 所有条件一次性声明，由存储层整体翻译为查询，
// 不在执行过程中追加修改。零值字段表示不筛选。
type EmailFilter struct {
	LooseTerms     []string   // 松散关键词，正文命中任意一个即可
	ExactPhrases   []string   // 精确短语，全部都要命中
	ExclusionTerms []string   // 排除词，命中任何一个则剔除
	Sender         string     // 发件人名称的子串匹配，不区分大小写
	EmailType      EmailType  // 类别精确匹配
	DateFrom       *time.Time // 发送时间下界（含）
	DateBefore     *time.Time // 发送时间上界（不含）
	HasReferences  bool       // 仅保留引用缓存非空的邮件
	HasComments    bool       // 仅保留存在评论的邮件
}

// SortSpec 排序规格
type SortSpec struct {
	Column     string
	Descending bool
}

// emailSortColumns 邮件检索允许排序的列
var emailSortColumns = map[string]bool{
	"unique_email_id": true,
	"sender_name":     true,
	"sender_email":    true,
	"title":           true,
	"email_type":      true,
	"date_sent":       true,
}

// activitySortColumns 活动检索允许排序的列
var activitySortColumns = map[string]bool{
	"user_id":   true,
	"activity":  true,
	"timestamp": true,
}

// NormalizeEmailSort 校验排序列，未知列回退到 date_sent 倒序
func NormalizeEmailSort(column, order string) SortSpec {
	if !emailSortColumns[column] {
		return SortSpec{Column: "date_sent", Descending: true}
	}
	return SortSpec{Column: column, Descending: order != "asc"}
}

// NormalizeActivitySort 校验排序列，未知列回退到 timestamp 倒序
func NormalizeActivitySort(column, order string) SortSpec {
	if !activitySortColumns[column] {
		return SortSpec{Column: "timestamp", Descending: true}
	}
	return SortSpec{Column: column, Descending: order != "asc"}
}

// EmailSearchCriteria 邮件检索条件
type EmailSearchCriteria struct {
	Filter   EmailFilter
	Sort     SortSpec
	Page     int // 页码（默认1）
	PageSize int // 每页数量（默认50，最大200）
}

// EmailSearchResult 邮件检索结果，Total 为分页前的总命中数
type EmailSearchResult struct {
	Emails     []Email `json:"emails"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

// ActivitySearchCriteria 活动检索条件
type ActivitySearchCriteria struct {
	UserID   string // 按用户筛选，空表示全部
	Sort     SortSpec
	Page     int
	PageSize int // 默认25
}

// ActivitySearchResult 活动检索结果
type ActivitySearchResult struct {
	Activities []UserActivity `json:"activities"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
