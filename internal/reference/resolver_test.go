package reference

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailarchive/backend/internal/domain"
)

// fakeLookup 只认识构造时给定的邮件
type fakeLookup struct {
	emails map[string]domain.Email
	err    error
	calls  int
}

func (f *fakeLookup) ListEmailsByIDs(ids []string) ([]domain.Email, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Email
	for _, id := range ids {
		if e, ok := f.emails[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func newFakeLookup(ids ...string) *fakeLookup {
	f := &fakeLookup{emails: make(map[string]domain.Email)}
	for _, id := range ids {
		f.emails[id] = domain.Email{UniqueEmailID: id, Title: "subject " + id}
	}
	return f
}

func TestResolveWrapsExistingReferences(t *testing.T) {
	lookup := newFakeLookup("JohnSmith-24-1007")
	resolver := NewResolver(lookup)

	result, err := resolver.Resolve("please see JohnSmith-24-1007 for details")
	require.NoError(t, err)

	assert.Contains(t, result.Body, `href="#collapse-JohnSmith-24-1007"`)
	assert.Contains(t, result.Body, `>JohnSmith-24-1007</a>`)
	assert.Contains(t, result.Body, "please see ")
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "JohnSmith-24-1007", result.Emails[0].UniqueEmailID)
}

func TestResolveLeavesUnknownCandidatesAlone(t *testing.T) {
	lookup := newFakeLookup("JohnSmith-24-1007")
	resolver := NewResolver(lookup)

	result, err := resolver.Resolve("known JohnSmith-24-1007, unknown Ghost-99-9999")
	require.NoError(t, err)

	assert.Contains(t, result.Body, `>JohnSmith-24-1007</a>`)
	assert.Contains(t, result.Body, "unknown Ghost-99-9999")
	assert.NotContains(t, result.Body, `collapse-Ghost-99-9999`)
	assert.Len(t, result.Emails, 1)
}

func TestResolveRewritesEveryOccurrence(t *testing.T) {
	lookup := newFakeLookup("JohnSmith-24-1007")
	resolver := NewResolver(lookup)

	result, err := resolver.Resolve("JohnSmith-24-1007 and again JohnSmith-24-1007")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(result.Body, `>JohnSmith-24-1007</a>`))
	assert.Len(t, result.Emails, 1)
}

func TestResolveSingleBatchLookup(t *testing.T) {
	lookup := newFakeLookup("A1-24-1000", "B2-24-2000")
	resolver := NewResolver(lookup)

	_, err := resolver.Resolve("A1-24-1000 B2-24-2000 A1-24-1000")
	require.NoError(t, err)

	assert.Equal(t, 1, lookup.calls)
}

func TestResolveIdentityWithoutCandidates(t *testing.T) {
	lookup := newFakeLookup()
	resolver := NewResolver(lookup)

	body := "no references here at all"
	result, err := resolver.Resolve(body)
	require.NoError(t, err)

	assert.Equal(t, body, result.Body)
	assert.Empty(t, result.Emails)
	assert.Zero(t, lookup.calls)
}

func TestResolvePropagatesStoreError(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("store down")}
	resolver := NewResolver(lookup)

	_, err := resolver.Resolve("JohnSmith-24-1007")
	assert.Error(t, err)
}
