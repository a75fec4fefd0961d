package reference

import (
	"fmt"
	"strings"

	"mailarchive/backend/internal/domain"
)

// EmailLookup 批量确认引用目标存在所需的最小接口
type EmailLookup interface {
	ListEmailsByIDs(ids []string) ([]domain.Email, error)
}

// anchorFormat 已确认引用的链接标记，展开折叠面板
const anchorFormat = `<a href="#collapse-%s" data-bs-toggle="collapse" aria-expanded="false" aria-controls="collapse-%s">%s</a>`

// Resolver 把正文中确认存在的引用改写为链接
type Resolver struct {
	store EmailLookup
}

// NewResolver 创建引用解析器
func NewResolver(store EmailLookup) *Resolver {
	return &Resolver{store: store}
}

// Resolved 引用解析结果
type Resolved struct {
	Body   string         // 改写后的正文，原文不变
	Emails []domain.Email // 被引用且确实存在的邮件，按首次出现顺序
}

// Resolve 扫描正文并改写全部已确认的引用
//
// 候选批量查库一次，只有存在的目标才被包装为链接，
// 未确认的候选原样保留。改写按匹配位置单趟拼接完成，
// 同一引用出现多次时每处都会被改写。
func (r *Resolver) Resolve(body string) (Resolved, error) {
	candidates := Scan(body)
	if len(candidates) == 0 {
		return Resolved{Body: body}, nil
	}

	emails, err := r.store.ListEmailsByIDs(candidates)
	if err != nil {
		return Resolved{}, fmt.Errorf("resolve references: %w", err)
	}

	existing := make(map[string]bool, len(emails))
	for _, e := range emails {
		existing[e.UniqueEmailID] = true
	}

	// 被引用的邮件按正文首次出现顺序排列
	byID := make(map[string]domain.Email, len(emails))
	for _, e := range emails {
		byID[e.UniqueEmailID] = e
	}
	resolved := make([]domain.Email, 0, len(emails))
	for _, id := range candidates {
		if e, ok := byID[id]; ok {
			resolved = append(resolved, e)
		}
	}

	spans := idPattern.FindAllStringIndex(body, -1)
	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for _, span := range spans {
		id := body[span[0]:span[1]]
		if !existing[id] {
			continue
		}
		b.WriteString(body[last:span[0]])
		fmt.Fprintf(&b, anchorFormat, id, id, id)
		last = span[1]
	}
	b.WriteString(body[last:])

	return Resolved{Body: b.String(), Emails: resolved}, nil
}
