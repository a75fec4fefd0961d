package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagesCeil(t *testing.T) {
	assert.Equal(t, 0, New(1, 50, 0).Pages())
	assert.Equal(t, 1, New(1, 50, 1).Pages())
	assert.Equal(t, 1, New(1, 50, 50).Pages())
	assert.Equal(t, 2, New(1, 50, 51).Pages())
	assert.Equal(t, 3, New(1, 25, 51).Pages())
}

func TestClamping(t *testing.T) {
	p := New(0, -5, -1)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.PerPage)
	assert.Equal(t, 0, p.Total)
}

func TestPrevNext(t *testing.T) {
	p := New(2, 10, 35) // 4 页

	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PrevNum())
	assert.Equal(t, 3, p.NextNum())
	assert.Equal(t, 10, p.Offset())

	first := New(1, 10, 35)
	assert.False(t, first.HasPrev())
	assert.Equal(t, 0, first.PrevNum())

	lastPage := New(4, 10, 35)
	assert.False(t, lastPage.HasNext())
	assert.Equal(t, 0, lastPage.NextNum())
}

func TestIterPagesMiddle(t *testing.T) {
	p := New(10, 10, 200) // 20 页，当前第 10 页

	links := p.PageLinks()

	assert.Equal(t, []int{1, 2, Gap, 8, 9, 10, 11, 12, 13, 14, Gap, 19, 20}, links)
}

func TestIterPagesFirstPage(t *testing.T) {
	p := New(1, 10, 100) // 10 页

	assert.Equal(t, []int{1, 2, 3, 4, 5, Gap, 9, 10}, p.PageLinks())
}

func TestIterPagesSmallTotal(t *testing.T) {
	p := New(1, 10, 30) // 3 页，全部直接列出

	assert.Equal(t, []int{1, 2, 3}, p.PageLinks())
}

func TestIterPagesEmpty(t *testing.T) {
	assert.Empty(t, New(1, 10, 0).PageLinks())
}

func TestIterPagesNoAdjacentGaps(t *testing.T) {
	for pages := 1; pages <= 40; pages++ {
		for page := 1; page <= pages; page++ {
			links := New(page, 10, pages*10).PageLinks()
			for i := 1; i < len(links); i++ {
				if links[i] == Gap {
					assert.NotEqual(t, Gap, links[i-1],
						"pages=%d page=%d links=%v", pages, page, links)
				}
			}
			// 当前页总是出现在序列中
			assert.Contains(t, links, page)
		}
	}
}

func TestViewExport(t *testing.T) {
	v := New(2, 25, 60).View()

	assert.Equal(t, 2, v.Page)
	assert.Equal(t, 3, v.Pages)
	assert.Equal(t, 60, v.Total)
	assert.True(t, v.HasPrev)
	assert.True(t, v.HasNext)
	assert.Equal(t, 1, v.PrevNum)
	assert.Equal(t, 3, v.NextNum)
}
