package markdown

import (
	"slices"
	"strings"
)

// MergeTable 將新表格併入較大的 Markdown 文件
//
// 先找目前格式的標題列，找不到再找舊格式。
// 從標題列到下一個一級或二級標題（或文件結尾）之間的內容以新表格取代，
// 前後文字原樣保留。
// 文件中沒有顧客表時，表格放在去除前後空白的文件之前。
func MergeTable(doc, table string) string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	lines := strings.Split(doc, "\n")

	start := findHeader(lines, TableHeader)
	if start < 0 {
		start = findHeader(lines, LegacyTableHeader)
	}
	if start < 0 {
		rest := strings.TrimSpace(doc)
		if rest == "" {
			return table + "\n"
		}
		return table + "\n\n" + rest + "\n"
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if isSectionHeading(lines[i]) {
			end = i
			break
		}
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(strings.Join(lines[:start], "\n"))
		b.WriteString("\n")
	}
	b.WriteString(table)
	b.WriteString("\n")
	if end < len(lines) {
		b.WriteString("\n")
		b.WriteString(strings.Join(lines[end:], "\n"))
	}
	return b.String()
}

// findHeader 以欄位標題比對（忽略儲存格內的空白差異）
func findHeader(lines []string, header string) int {
	want := splitRow(header)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		if slices.Equal(splitRow(line), want) {
			return i
		}
	}
	return -1
}

func isSectionHeading(line string) bool {
	return strings.HasPrefix(line, "# ") || strings.HasPrefix(line, "## ")
}
