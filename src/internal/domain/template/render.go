package template

import (
	"regexp"
	"strings"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Render 替換 {{名稱}} 佔位符，未知的佔位符原樣保留
func Render(body string, replacements map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(body, func(token string) string {
		name := strings.TrimSpace(token[2 : len(token)-2])
		if v, ok := replacements[name]; ok {
			return v
		}
		return token
	})
}

// Profile 訊息產生所需的自社資料
type Profile struct {
	Sender
	MaterialURL string
	ServiceURL  string
}

// 需要手動填寫的欄位
const (
	fillSchedule   = "＜目安日程をご記入ください＞"
	fillCandidates = "＜候補日時をご記入ください＞"
	fillPlanName   = "＜提案プラン名をご記入ください＞"
)

// Replacements 為顧客建立佔位符對照表
func Replacements(r customer.Record, p Profile, now time.Time) map[string]string {
	contact := r.ContactURL
	if c, ok := customer.ParseContact(r.ContactURL); ok {
		contact = c.URL
	}

	return map[string]string{
		"顧客名":     r.CustomerName,
		"自社名":     p.CompanyName,
		"事業名":     p.CompanyName,
		"担当者名":    p.DisplayName(),
		"氏名":      p.PersonName,
		"氏名読み":    p.PersonReading,
		"資料URL":   p.MaterialURL,
		"サービスURL": p.ServiceURL,
		"最終連絡日":   orDefault(r.LastContactDate, customer.ActionUnset),
		"次のアクション": orDefault(r.NextAction, customer.ActionUnset),
		"実行予定日":   orDefault(r.ScheduledDate, customer.ActionUnset),
		"連絡先":     contact,
		"取引回数":    orDefault(r.TransactionCount, "0"),
		"総額":      orDefault(r.TotalAmount, "0円"),
		"関係性メモ":   InferMemo(r),
		"目安日程":    fillSchedule,
		"候補日時":    fillCandidates,
		"提案プラン名":  fillPlanName,
		"挨拶文":     Greeting(r, p.Sender, now),
		"署名":      "",
	}
}

// InferMemo 關係性メモ：有備註用備註，否則依動作推測
func InferMemo(r customer.Record) string {
	if notes := strings.TrimSpace(r.Notes); notes != "" && notes != "-" {
		return notes
	}
	switch {
	case strings.Contains(r.NextAction, customer.ActionFollowUp):
		return "現在進行中の案件"
	case strings.Contains(r.NextAction, customer.ActionNewProposal):
		return "これまでのやり取り"
	default:
		return "これまでの案件"
	}
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
