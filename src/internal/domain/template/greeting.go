package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

// Sender 寄件人資料
type Sender struct {
	CompanyName   string
	PersonName    string
	PersonReading string
}

// DisplayName 擔當者顯示名稱：「氏名（読み）」
//
// 名稱已含全形括號時原樣返回。
func (s Sender) DisplayName() string {
	name := strings.TrimSpace(s.PersonName)
	if strings.Contains(name, "（") && strings.Contains(name, "）") {
		return name
	}
	if s.PersonReading == "" {
		return name
	}
	return fmt.Sprintf("%s（%s）", name, s.PersonReading)
}

// 依經過天數的問候語
const (
	greetThanksAlways  = "いつもありがとうございます"
	greetIndebted      = "いつもお世話になっております"
	greetThanksRecent  = "先日はありがとうございました"
	greetThanksThis    = "この度はありがとうございました"
	greetThanksBefore  = "以前はありがとうございました"
	greetLongTime      = "ご無沙汰しております"
	greetAWhile        = "お久しぶりです"
	greetVeryLongTime  = "大変ご無沙汰しております"
	regularMinimum     = 2
	regularWindowDays  = 120
	frequentWindowDays = 30
)

// Greeting 依最終連絡日與取引回數產生問候句
//
// 格式：「{問候語}、{会社名}の{担当者}です。」
func Greeting(r customer.Record, sender Sender, now time.Time) string {
	return fmt.Sprintf("%s、%sの%sです。", greetingPrefix(r, now), sender.CompanyName, sender.DisplayName())
}

func greetingPrefix(r customer.Record, now time.Time) string {
	count := r.TransactionCountValue()
	last, ok := customer.ParseDate(r.LastContactDate, now)
	if !ok {
		if count >= regularMinimum {
			return greetIndebted
		}
		return greetThanksBefore
	}

	elapsed := customer.DaysBetween(last, now)
	if elapsed < 0 {
		elapsed = 0
	}

	if count >= regularMinimum && elapsed < regularWindowDays {
		if elapsed < frequentWindowDays {
			return greetThanksAlways
		}
		return greetIndebted
	}

	switch {
	case elapsed <= 7:
		return greetThanksRecent
	case elapsed <= 30:
		return greetThanksThis
	case elapsed <= 90:
		return greetThanksBefore
	case elapsed <= 180:
		return greetLongTime
	case elapsed <= 365:
		return greetAWhile
	default:
		return greetVeryLongTime
	}
}
