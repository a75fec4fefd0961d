// Package pagination 实现列表页的分页计算与页码窗口
package pagination

// Gap 页码序列中的省略标记
const Gap = 0

// 页码窗口的默认宽度
const (
	DefaultLeftEdge     = 2
	DefaultLeftCurrent  = 2
	DefaultRightCurrent = 5
	DefaultRightEdge    = 2
)

// Pagination 一次查询的分页状态
type Pagination struct {
	Page    int // 当前页，从 1 开始
	PerPage int // 每页数量
	Total   int // 分页前的总命中数
}

// New 创建分页状态，非法入参收敛到最小合法值
func New(page, perPage, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if total < 0 {
		total = 0
	}
	return Pagination{Page: page, PerPage: perPage, Total: total}
}

// Pages 总页数，无结果时为 0
func (p Pagination) Pages() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// HasPrev 是否存在上一页
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext 是否存在下一页
func (p Pagination) HasNext() bool {
	return p.Page < p.Pages()
}

// PrevNum 上一页页码，不存在时为 0
func (p Pagination) PrevNum() int {
	if !p.HasPrev() {
		return 0
	}
	return p.Page - 1
}

// NextNum 下一页页码，不存在时为 0
func (p Pagination) NextNum() int {
	if !p.HasNext() {
		return 0
	}
	return p.Page + 1
}

// Offset 当前页在整个结果集中的起始偏移
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// IterPages 生成带省略的页码序列
//
// 序列保留开头 leftEdge 页、结尾 rightEdge 页，以及当前页
// 前 leftCurrent 页到后 rightCurrent-1 页的窗口；相邻保留段
// 之间插入一个 Gap 标记，绝不连续出现两个 Gap。
func (p Pagination) IterPages(leftEdge, leftCurrent, rightCurrent, rightEdge int) []int {
	pages := p.Pages()
	var out []int
	last := 0
	for num := 1; num <= pages; num++ {
		if num <= leftEdge ||
			(num > p.Page-leftCurrent-1 && num < p.Page+rightCurrent) ||
			num > pages-rightEdge {
			if last+1 != num {
				out = append(out, Gap)
			}
			out = append(out, num)
			last = num
		}
	}
	return out
}

// PageLinks 使用默认窗口宽度生成页码序列
func (p Pagination) PageLinks() []int {
	return p.IterPages(DefaultLeftEdge, DefaultLeftCurrent, DefaultRightCurrent, DefaultRightEdge)
}

// View 供前端渲染的分页视图
type View struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int   `json:"total"`
	Pages   int   `json:"pages"`
	HasPrev bool  `json:"hasPrev"`
	HasNext bool  `json:"hasNext"`
	PrevNum int   `json:"prevNum,omitempty"`
	NextNum int   `json:"nextNum,omitempty"`
	Links   []int `json:"links"` // 0 表示省略
}

// View 导出分页视图
func (p Pagination) View() View {
	return View{
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   p.Total,
		Pages:   p.Pages(),
		HasPrev: p.HasPrev(),
		HasNext: p.HasNext(),
		PrevNum: p.PrevNum(),
		NextNum: p.NextNum(),
		Links:   p.PageLinks(),
	}
}
