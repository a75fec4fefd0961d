package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage/memory"
)

func seedSearchStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()

	emails := []domain.Email{
		{
			UniqueEmailID: "JohnSmith-24-1001",
			UserID:        "user-1",
			SenderName:    "John Smith",
			SenderEmail:   "john.smith@example.com",
			Title:         "Quarterly report",
			Body:          "The quarterly numbers look strong this time.",
			EmailType:     domain.TypeWork,
			DateSent:      time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			UniqueEmailID: "MaryJones-24-1001",
			UserID:        "user-1",
			SenderName:    "Mary Jones",
			SenderEmail:   "mary.jones@example.com",
			Title:         "Weekend plans",
			Body:          "Are we still on for the hike? See JohnSmith-24-1001 for context.",
			EmailType:     domain.TypePersonal,
			DateSent:      time.Date(2024, 3, 12, 18, 30, 0, 0, time.UTC),
			References:    "JohnSmith-24-1001",
		},
		{
			UniqueEmailID: "Promo-24-9001",
			UserID:        "user-2",
			SenderName:    "Deals Daily",
			SenderEmail:   "offers@deals.example.com",
			Title:         "Huge discount inside",
			Body:          "Limited time discount on everything.",
			EmailType:     domain.TypePromotion,
			DateSent:      time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC),
		},
	}
	for i := range emails {
		require.NoError(t, store.SaveEmail(&emails[i]))
	}
	return store
}

func TestSearchService_SearchEmails_QueryGrammar(t *testing.T) {
	store := seedSearchStore(t)
	service := NewSearchService(store)

	// 松散关键词任意命中
	result, pg, err := service.SearchEmails(SearchEmailsInput{
		Query: "quarterly hike",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, pg.Pages())

	// 短语必须全部命中
	result, _, err = service.SearchEmails(SearchEmailsInput{
		Query: `"quarterly numbers"`,
	})
	require.NoError(t, err)
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "JohnSmith-24-1001", result.Emails[0].UniqueEmailID)

	// 排除词剔除命中
	result, _, err = service.SearchEmails(SearchEmailsInput{
		Query: "the -discount",
	})
	require.NoError(t, err)
	for _, e := range result.Emails {
		assert.NotEqual(t, "Promo-24-9001", e.UniqueEmailID)
	}
}

func TestSearchService_SearchEmails_SpansAllUsers(t *testing.T) {
	store := seedSearchStore(t)
	service := NewSearchService(store)

	// 归档整体可见，检索不按归属用户过滤
	result, _, err := service.SearchEmails(SearchEmailsInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)

	owners := make(map[string]bool)
	for _, e := range result.Emails {
		owners[e.UserID] = true
	}
	assert.True(t, owners["user-1"])
	assert.True(t, owners["user-2"])
}

func TestSearchService_SearchEmails_Filters(t *testing.T) {
	store := seedSearchStore(t)
	service := NewSearchService(store)

	result, _, err := service.SearchEmails(SearchEmailsInput{
		Sender: "mary",
	})
	require.NoError(t, err)
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "MaryJones-24-1001", result.Emails[0].UniqueEmailID)

	// 发件人筛选只匹配名称，不匹配地址
	result, _, err = service.SearchEmails(SearchEmailsInput{
		Sender: "example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Emails)

	result, _, err = service.SearchEmails(SearchEmailsInput{
		EmailType: "Promotion",
	})
	require.NoError(t, err)
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "Promo-24-9001", result.Emails[0].UniqueEmailID)

	result, _, err = service.SearchEmails(SearchEmailsInput{
		HasReferences: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "MaryJones-24-1001", result.Emails[0].UniqueEmailID)
}

func TestSearchService_SearchEmails_ExplicitDates(t *testing.T) {
	store := seedSearchStore(t)
	service := NewSearchService(store)

	// 结束日期含当天
	result, _, err := service.SearchEmails(SearchEmailsInput{
		StartDate: "2024-03-12",
		EndDate:   "2024-03-12",
	})
	require.NoError(t, err)
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "MaryJones-24-1001", result.Emails[0].UniqueEmailID)

	// 无法解析的日期静默忽略
	result, _, err = service.SearchEmails(SearchEmailsInput{
		StartDate: "not-a-date",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
}

func TestDateRange_Presets(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	from, before := dateRange("yesterday", "", "", now)
	require.NotNil(t, from)
	require.NotNil(t, before)
	assert.Equal(t, today.AddDate(0, 0, -1), *from)
	assert.Equal(t, today, *before)

	from, before = dateRange("week", "", "", now)
	require.NotNil(t, from)
	assert.Nil(t, before)
	assert.Equal(t, today.AddDate(0, 0, -7), *from)

	from, _ = dateRange("month", "", "", now)
	assert.Equal(t, today.AddDate(0, 0, -30), *from)

	from, _ = dateRange("year", "", "", now)
	assert.Equal(t, today.AddDate(0, 0, -365), *from)
}

func TestDateRange_PresetWinsOverExplicit(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	from, before := dateRange("yesterday", "2020-01-01", "2020-12-31", now)
	require.NotNil(t, from)
	require.NotNil(t, before)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *before)
}

func TestDateRange_UnknownPresetDropsDateFilter(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	// 未知的快捷区间接管日期筛选但不加限制，显式日期被忽略
	from, before := dateRange("fortnight", "2020-01-01", "2020-12-31", now)
	assert.Nil(t, from)
	assert.Nil(t, before)
}

func TestDateRange_ExplicitEndExclusiveNextDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	from, before := dateRange("", "2024-03-01", "2024-03-10", now)
	require.NotNil(t, from)
	require.NotNil(t, before)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), *before)
}

func TestSearchService_ListEmailTypes(t *testing.T) {
	store := seedSearchStore(t)
	service := NewSearchService(store)

	types, err := service.ListEmailTypes()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Work", "Personal", "Promotion"}, types)
}
