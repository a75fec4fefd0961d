// Package query 实现检索框自由文本的解析
//
// 语法:
//   - "..."  双引号包裹的精确短语（非贪婪，不含转义）
//   - -word  排除词（至少两个字符，否则按普通词处理）
//   - word   松散关键词
package query

import (
	"regexp"
	"strings"
)

// phrasePattern 匹配双引号短语，非贪婪，未闭合的引号按字面处理
var phrasePattern = regexp.MustCompile(`"(.+?)"`)

// ParsedQuery 解析后的检索词分组
type ParsedQuery struct {
	LooseTerms     []string // 松散关键词，任意命中即可
	ExactPhrases   []string // 精确短语，全部都要命中
	ExclusionTerms []string // 排除词（已去掉前导 -）
}

// IsEmpty 判断是否没有任何检索词
func (q ParsedQuery) IsEmpty() bool {
	return len(q.LooseTerms) == 0 && len(q.ExactPhrases) == 0 && len(q.ExclusionTerms) == 0
}

// Parse 解析检索框输入
//
// 先抽出全部引号短语，剩余文本按空白切分：
// 以 - 开头且长度大于 1 的记为排除词，单独的 - 丢弃，
// 其余记为松散关键词。任何输入都不会报错。
func Parse(raw string) ParsedQuery {
	var parsed ParsedQuery

	for _, m := range phrasePattern.FindAllStringSubmatch(raw, -1) {
		parsed.ExactPhrases = append(parsed.ExactPhrases, m[1])
	}

	remainder := phrasePattern.ReplaceAllString(raw, "")
	for _, term := range strings.Fields(remainder) {
		switch {
		case strings.HasPrefix(term, "-") && len(term) > 1:
			parsed.ExclusionTerms = append(parsed.ExclusionTerms, term[1:])
		case term == "-":
			// 孤立的减号没有意义，丢弃
		default:
			parsed.LooseTerms = append(parsed.LooseTerms, term)
		}
	}

	return parsed
}
