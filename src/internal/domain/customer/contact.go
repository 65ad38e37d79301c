package customer

import (
	"regexp"
	"strings"
)

var markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)]\(([^)]+)\)`)

// Contact 連絡先連結
type Contact struct {
	Label string
	URL   string
}

// ParseContact 解析連絡先欄位
//
// 支援 Markdown 連結 [label](url) 與以 http 開頭的網址。
func ParseContact(value string) (Contact, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Contact{}, false
	}
	if m := markdownLinkPattern.FindStringSubmatch(value); m != nil {
		return Contact{Label: m[1], URL: m[2]}, true
	}
	if strings.HasPrefix(value, "http") {
		return Contact{Label: "開く", URL: value}, true
	}
	return Contact{}, false
}
