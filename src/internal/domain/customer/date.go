package customer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

var (
	fullDatePattern     = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
	monthDayPattern     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
	japaneseDateReplace = strings.NewReplacer("年", "/", "月", "/", "日", "")
)

// ParseDate 解析手動輸入的日期字串
//
// 接受 YYYY/MM/DD、YYYY-MM-DD、M/D、M-D（年份取 now 的年份），
// 全形數字與分隔符號、以及「2025年11月17日」形式。
// 空字串、「-」、「未設定」、格式不符或不存在的日期返回 false。
// 結果為本地時間午夜。
func ParseDate(text string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(width.Narrow.String(text))
	if s == "" || s == "-" || s == ActionUnset {
		return time.Time{}, false
	}
	s = strings.Join(strings.Fields(japaneseDateReplace.Replace(s)), "")

	if m := fullDatePattern.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := monthDayPattern.FindStringSubmatch(s); m != nil {
		return makeDate(now.Year(), atoi(m[1]), atoi(m[2]))
	}
	return time.Time{}, false
}

// FormatDate 格式化為 YYYY/MM/DD
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d", t.Year(), int(t.Month()), t.Day())
}

// StartOfDay 將時間截斷為當天午夜
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween 兩個日期之間的日曆天數（to - from），不受夏令時間影響
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// leadingInt 寬鬆整數解析：取開頭的數字（「15以上」→ 15）
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(width.Narrow.String(s))
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
