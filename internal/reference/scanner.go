// Package reference 实现邮件正文中交叉引用的识别与改写
//
// 引用形如 "JohnSmith-24-1007"：字母数字段-两位年份-至少四位序号。
// 识别到的候选需要经过存储层确认存在后才会被改写为链接。
package reference

import "regexp"

// idPattern 引用候选的形状
var idPattern = regexp.MustCompile(`([a-zA-Z0-9]+-\d{2}-\d{4,})`)

// Scan 扫描正文，返回去重后的引用候选，保持首次出现顺序
func Scan(body string) []string {
	matches := idPattern.FindAllString(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	candidates := make([]string, 0, len(matches))
	for _, id := range matches {
		if seen[id] {
			continue
		}
		seen[id] = true
		candidates = append(candidates, id)
	}
	return candidates
}
