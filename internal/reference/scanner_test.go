package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanFindsCandidates(t *testing.T) {
	body := "See JohnSmith-24-1007 and also MaryJones-23-1042 for context."

	assert.Equal(t, []string{"JohnSmith-24-1007", "MaryJones-23-1042"}, Scan(body))
}

func TestScanDeduplicatesFirstSeen(t *testing.T) {
	body := "JohnSmith-24-1007 again JohnSmith-24-1007 then MaryJones-23-1042"

	assert.Equal(t, []string{"JohnSmith-24-1007", "MaryJones-23-1042"}, Scan(body))
}

func TestScanRejectsWrongShapes(t *testing.T) {
	assert.Nil(t, Scan("Bad-1-2"))          // 年份和序号位数不足
	assert.Nil(t, Scan("NoDigits-ab-cdef")) // 后两段必须是数字
	assert.Nil(t, Scan("plain text without ids"))
	assert.Nil(t, Scan(""))
}

func TestScanSequenceAtLeastFourDigits(t *testing.T) {
	assert.Nil(t, Scan("JohnSmith-24-107"))
	assert.Equal(t, []string{"JohnSmith-24-10071234"}, Scan("JohnSmith-24-10071234"))
}
