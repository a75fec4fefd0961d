package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLooseTerms(t *testing.T) {
	parsed := Parse("urgent meeting")

	assert.Equal(t, []string{"urgent", "meeting"}, parsed.LooseTerms)
	assert.Empty(t, parsed.ExactPhrases)
	assert.Empty(t, parsed.ExclusionTerms)
}

func TestParseMixed(t *testing.T) {
	parsed := Parse(`"status report" -spam urgent`)

	assert.Equal(t, []string{"status report"}, parsed.ExactPhrases)
	assert.Equal(t, []string{"spam"}, parsed.ExclusionTerms)
	assert.Equal(t, []string{"urgent"}, parsed.LooseTerms)
}

func TestParseMultiplePhrases(t *testing.T) {
	parsed := Parse(`"q3 results" review "next steps"`)

	assert.Equal(t, []string{"q3 results", "next steps"}, parsed.ExactPhrases)
	assert.Equal(t, []string{"review"}, parsed.LooseTerms)
}

func TestParseLoneDashDropped(t *testing.T) {
	parsed := Parse("alpha - beta")

	assert.Equal(t, []string{"alpha", "beta"}, parsed.LooseTerms)
	assert.Empty(t, parsed.ExclusionTerms)
}

func TestParseDashBeforePhrase(t *testing.T) {
	// 引号短语先被抽出，残留的孤立 - 被丢弃
	parsed := Parse(`-"bad vibes"`)

	assert.Equal(t, []string{"bad vibes"}, parsed.ExactPhrases)
	assert.Empty(t, parsed.ExclusionTerms)
	assert.Empty(t, parsed.LooseTerms)
}

func TestParseUnterminatedQuote(t *testing.T) {
	parsed := Parse(`"incomplete`)

	assert.Empty(t, parsed.ExactPhrases)
	assert.Equal(t, []string{`"incomplete`}, parsed.LooseTerms)
}

func TestParseShortExclusion(t *testing.T) {
	parsed := Parse("-a -ab")

	assert.Equal(t, []string{"a", "ab"}, parsed.ExclusionTerms)
}

func TestParseEmpty(t *testing.T) {
	assert.True(t, Parse("").IsEmpty())
	assert.True(t, Parse("   ").IsEmpty())
}

func TestParseNonGreedyPhrases(t *testing.T) {
	parsed := Parse(`"one" middle "two"`)

	assert.Equal(t, []string{"one", "two"}, parsed.ExactPhrases)
	assert.Equal(t, []string{"middle"}, parsed.LooseTerms)
}
