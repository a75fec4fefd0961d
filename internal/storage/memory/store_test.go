package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage"
)

const testUserID = "user-1"

func day(d int) time.Time {
	return time.Date(2024, 6, d, 12, 0, 0, 0, time.UTC)
}

func seedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()

	emails := []domain.Email{
		{
			UniqueEmailID: "JohnSmith-24-1001",
			UserID:        testUserID,
			SenderName:    "John Smith",
			SenderEmail:   "john.smith@example.com",
			Title:         "Budget review",
			Body:          "The quarterly budget needs urgent review before Friday.",
			EmailType:     domain.TypeWork,
			DateSent:      day(1),
		},
		{
			UniqueEmailID: "JohnSmith-24-1002",
			UserID:        testUserID,
			SenderName:    "John Smith",
			SenderEmail:   "john.smith@example.com",
			Title:         "Lunch",
			Body:          "Are you free for lunch tomorrow?",
			EmailType:     domain.TypePersonal,
			DateSent:      day(5),
			References:    "JohnSmith-24-1001",
		},
		{
			UniqueEmailID: "MaryJones-24-1001",
			UserID:        testUserID,
			SenderName:    "Mary Jones",
			SenderEmail:   "mary.jones@example.com",
			Title:         "Status report",
			Body:          "Attached is the weekly status report with urgent items flagged.",
			EmailType:     domain.TypeWork,
			DateSent:      day(10),
		},
		{
			UniqueEmailID: "Spammy-24-9001",
			UserID:        "someone-else",
			SenderName:    "Spammy Sender",
			SenderEmail:   "spam@example.com",
			Title:         "Win big",
			Body:          "urgent urgent urgent",
			EmailType:     domain.TypeSpam,
			DateSent:      day(3),
		},
	}
	for i := range emails {
		require.NoError(t, s.SaveEmail(&emails[i]))
	}

	require.NoError(t, s.CreateComment(&domain.Comment{
		Body:    "Looks good",
		UserID:  testUserID,
		EmailID: "MaryJones-24-1001",
	}))

	return s
}

func search(t *testing.T, s *Store, filter domain.EmailFilter) *domain.EmailSearchResult {
	t.Helper()
	result, err := s.SearchEmails(domain.EmailSearchCriteria{
		Filter: filter,
		Sort:   domain.NormalizeEmailSort("date_sent", "asc"),
	})
	require.NoError(t, err)
	return result
}

func resultIDs(result *domain.EmailSearchResult) []string {
	ids := make([]string, 0, len(result.Emails))
	for _, e := range result.Emails {
		ids = append(ids, e.UniqueEmailID)
	}
	return ids
}

func TestSearchLooseTermsAnyMatch(t *testing.T) {
	s := seedStore(t)

	// 两个关键词命中的是不同邮件，OR 语义下都应返回
	result := search(t, s, domain.EmailFilter{LooseTerms: []string{"budget", "lunch"}})

	assert.ElementsMatch(t, []string{"JohnSmith-24-1001", "JohnSmith-24-1002"}, resultIDs(result))
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := seedStore(t)

	result := search(t, s, domain.EmailFilter{LooseTerms: []string{"URGENT"}})

	assert.ElementsMatch(t,
		[]string{"JohnSmith-24-1001", "Spammy-24-9001", "MaryJones-24-1001"},
		resultIDs(result))
}

func TestSearchPhrasesAllRequired(t *testing.T) {
	s := seedStore(t)

	result := search(t, s, domain.EmailFilter{
		ExactPhrases: []string{"status report", "urgent items"},
	})
	assert.Equal(t, []string{"MaryJones-24-1001"}, resultIDs(result))

	none := search(t, s, domain.EmailFilter{
		ExactPhrases: []string{"status report", "does not occur"},
	})
	assert.Zero(t, none.Total)
}

func TestSearchExclusionRemovesMatches(t *testing.T) {
	s := seedStore(t)

	result := search(t, s, domain.EmailFilter{
		LooseTerms:     []string{"urgent"},
		ExclusionTerms: []string{"status"},
	})

	assert.Equal(t, []string{"JohnSmith-24-1001", "Spammy-24-9001"}, resultIDs(result))
}

func TestSearchSenderMatchesNameOnly(t *testing.T) {
	s := seedStore(t)

	byName := search(t, s, domain.EmailFilter{Sender: "mary"})
	assert.Equal(t, []string{"MaryJones-24-1001"}, resultIDs(byName))

	// 发件人筛选只看名称，地址子串不命中
	byAddress := search(t, s, domain.EmailFilter{Sender: "john.smith@"})
	assert.Empty(t, byAddress.Emails)
}

func TestSearchTypeExact(t *testing.T) {
	s := seedStore(t)

	result := search(t, s, domain.EmailFilter{EmailType: domain.TypePersonal})

	assert.Equal(t, []string{"JohnSmith-24-1002"}, resultIDs(result))
}

func TestSearchDateRangeHalfOpen(t *testing.T) {
	s := seedStore(t)

	from := day(1)
	before := day(5) // 上界不含，第 5 天的邮件不应返回
	result := search(t, s, domain.EmailFilter{DateFrom: &from, DateBefore: &before})

	assert.Equal(t, []string{"JohnSmith-24-1001", "Spammy-24-9001"}, resultIDs(result))
}

func TestSearchHasReferences(t *testing.T) {
	s := seedStore(t)

	result := search(t, s, domain.EmailFilter{HasReferences: true})

	assert.Equal(t, []string{"JohnSmith-24-1002"}, resultIDs(result))
}

func TestSearchHasComments(t *testing.T) {
	s := seedStore(t)

	result := search(t, s, domain.EmailFilter{HasComments: true})

	assert.Equal(t, []string{"MaryJones-24-1001"}, resultIDs(result))
}

func TestSearchSpansAllUsers(t *testing.T) {
	s := seedStore(t)

	// 归档整体可见，他人的邮件同样参与检索
	result := search(t, s, domain.EmailFilter{LooseTerms: []string{"urgent"}})
	assert.Contains(t, resultIDs(result), "Spammy-24-9001")
}

func TestSearchTotalBeforePagination(t *testing.T) {
	s := seedStore(t)

	result, err := s.SearchEmails(domain.EmailSearchCriteria{
		Filter:   domain.EmailFilter{},
		Sort:     domain.NormalizeEmailSort("date_sent", "desc"),
		Page:     1,
		PageSize: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.Emails, 2)
	// 默认倒序：最新的在前
	assert.Equal(t, "MaryJones-24-1001", result.Emails[0].UniqueEmailID)
}

func TestSearchPageBeyondEnd(t *testing.T) {
	s := seedStore(t)

	result, err := s.SearchEmails(domain.EmailSearchCriteria{
		Filter:   domain.EmailFilter{},
		Sort:     domain.NormalizeEmailSort("date_sent", "desc"),
		Page:     99,
		PageSize: 2,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Emails)
	assert.Equal(t, 4, result.Total)
}

func TestSearchUnknownSortFallsBack(t *testing.T) {
	s := seedStore(t)

	sort := domain.NormalizeEmailSort("; DROP TABLE emails", "asc")
	assert.Equal(t, "date_sent", sort.Column)
	assert.True(t, sort.Descending)

	result, err := s.SearchEmails(domain.EmailSearchCriteria{
		Filter: domain.EmailFilter{},
		Sort:   sort,
	})
	require.NoError(t, err)
	assert.Equal(t, "MaryJones-24-1001", result.Emails[0].UniqueEmailID)
}

func TestGetEmailNotFound(t *testing.T) {
	s := NewStore()

	_, err := s.GetEmail("Missing-24-1000")

	assert.ErrorIs(t, err, storage.ErrEmailNotFound)
}

func TestListEmailsByIDsSkipsMissing(t *testing.T) {
	s := seedStore(t)

	emails, err := s.ListEmailsByIDs([]string{"JohnSmith-24-1001", "Ghost-99-9999"})
	require.NoError(t, err)

	require.Len(t, emails, 1)
	assert.Equal(t, "JohnSmith-24-1001", emails[0].UniqueEmailID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.CreateUser(&domain.User{ID: "u1", Username: "alice"}))
	err := s.CreateUser(&domain.User{ID: "u2", Username: "Alice"})

	assert.ErrorIs(t, err, storage.ErrUsernameExists)
}

func TestActivitySearchFilterAndSort(t *testing.T) {
	s := NewStore()
	base := day(1)
	for i, a := range []domain.UserActivity{
		{ID: "a1", UserID: "u1", Activity: "login"},
		{ID: "a2", UserID: "u2", Activity: "login"},
		{ID: "a3", UserID: "u1", Activity: "api_search"},
	} {
		a.Timestamp = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.AppendActivity(&a))
	}

	result, err := s.SearchActivities(domain.ActivitySearchCriteria{
		UserID: "u1",
		Sort:   domain.NormalizeActivitySort("timestamp", "desc"),
	})
	require.NoError(t, err)

	require.Len(t, result.Activities, 2)
	assert.Equal(t, "a3", result.Activities[0].ID)
	assert.Equal(t, "a1", result.Activities[1].ID)
	assert.Equal(t, 25, result.PageSize)
}
