package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailarchive/backend/internal/domain"
	"mailarchive/backend/internal/storage"
	"mailarchive/backend/internal/storage/memory"
)

func seedEmailStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()

	emails := []domain.Email{
		{
			UniqueEmailID: "JohnSmith-24-1001",
			UserID:        "user-1",
			Title:         "Original report",
			Body:          "The original report.",
			DateSent:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			UniqueEmailID: "MaryJones-24-1001",
			UserID:        "user-1",
			Title:         "Follow-up",
			Body:          "See JohnSmith-24-1001 and the missing Ghost-24-9999 for details.",
			DateSent:      time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			UniqueEmailID: "Other-24-1001",
			UserID:        "user-2",
			Title:         "Shared context",
			Body:          "Background from another account.",
			DateSent:      time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC),
		},
	}
	for i := range emails {
		require.NoError(t, store.SaveEmail(&emails[i]))
	}
	return store
}

func newEmailService(store *memory.Store) *EmailService {
	return NewEmailService(store, NewCommentService(store))
}

func TestEmailService_Get_GlobalVisibility(t *testing.T) {
	store := seedEmailStore(t)
	service := newEmailService(store)

	email, err := service.Get("JohnSmith-24-1001")
	require.NoError(t, err)
	assert.Equal(t, "Original report", email.Title)

	// 归档整体可见，他人的邮件同样可以打开
	email, err = service.Get("Other-24-1001")
	require.NoError(t, err)
	assert.Equal(t, "user-2", email.UserID)
}

func TestEmailService_Get_NotFound(t *testing.T) {
	store := seedEmailStore(t)
	service := newEmailService(store)

	_, err := service.Get("Nope-24-0000")
	assert.ErrorIs(t, err, storage.ErrEmailNotFound)
}

func TestEmailService_View_ResolvesReferences(t *testing.T) {
	store := seedEmailStore(t)
	service := newEmailService(store)

	view, err := service.View("MaryJones-24-1001")
	require.NoError(t, err)

	// 确认存在的引用被改写为链接
	assert.Contains(t, view.Body, `href="#collapse-JohnSmith-24-1001"`)
	// 不存在的候选原样保留
	assert.Contains(t, view.Body, "Ghost-24-9999")
	assert.False(t, strings.Contains(view.Body, `#collapse-Ghost-24-9999`))

	require.Len(t, view.ReferencedEmails, 1)
	assert.Equal(t, "JohnSmith-24-1001", view.ReferencedEmails[0].UniqueEmailID)
}

func TestEmailService_View_CrossUserReferenceFollowable(t *testing.T) {
	store := seedEmailStore(t)
	service := newEmailService(store)

	email := &domain.Email{
		UniqueEmailID: "Alice-24-1000",
		UserID:        "user-1",
		Title:         "Handover",
		Body:          "Please read Other-24-1001 before the meeting.",
		DateSent:      time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveEmail(email))

	view, err := service.View("Alice-24-1000")
	require.NoError(t, err)

	// 引用他人的邮件同样生成链接
	assert.Contains(t, view.Body, `href="#collapse-Other-24-1001"`)
	require.Len(t, view.ReferencedEmails, 1)
	assert.Equal(t, "Other-24-1001", view.ReferencedEmails[0].UniqueEmailID)

	// 链接指向的邮件必须可以直接打开
	linked, err := service.View("Other-24-1001")
	require.NoError(t, err)
	assert.Equal(t, "Shared context", linked.Email.Title)
}

func TestEmailService_View_IncludesComments(t *testing.T) {
	store := seedEmailStore(t)
	service := newEmailService(store)

	require.NoError(t, store.CreateComment(&domain.Comment{
		Body:      "nice report",
		Timestamp: time.Now(),
		UserID:    "user-1",
		EmailID:   "JohnSmith-24-1001",
	}))

	view, err := service.View("JohnSmith-24-1001")
	require.NoError(t, err)

	assert.Equal(t, 1, view.CommentCount)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "nice report", view.Comments[0].Comment.Body)
}
