package customer

import (
	"strings"
	"time"
)

// ===========================
// 儀表板統計
// ===========================

// DayCount 單日連絡數
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// MonthCount 單月連絡數
type MonthCount struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// MonthAmount 單月金額
type MonthAmount struct {
	Month  time.Time `json:"month"`
	Amount int64     `json:"amount"`
}

// YearAmount 單年金額
type YearAmount struct {
	Year   int   `json:"year"`
	Amount int64 `json:"amount"`
}

// Stats 儀表板統計結果
type Stats struct {
	// 以下以篩選後的列表計算
	TotalCustomers int            `json:"totalCustomers"`
	TotalAmount    int64          `json:"totalAmount"`
	UrgentCount    int            `json:"urgentCount"`
	ActionCounts   map[string]int `json:"actionCounts"`

	// 以下以全部記錄計算
	NewCustomersThisMonth int           `json:"newCustomersThisMonth"`
	ContactsThisMonth     int           `json:"contactsThisMonth"`
	DailyContacts         []DayCount    `json:"dailyContacts"`   // 過去 30 天
	MonthlyContacts       []MonthCount  `json:"monthlyContacts"` // 過去 12 個月
	MonthlySales          []MonthAmount `json:"monthlySales"`    // 過去 6 個月
	YearlySales           []YearAmount  `json:"yearlySales"`     // 過去 3 年
}

// Summarize 計算儀表板統計
//
// 金額與連絡數以最終連絡日歸屬月份／年份（原始資料沒有交易日期）。
func Summarize(filtered, all []Record, now time.Time) Stats {
	stats := Stats{
		TotalCustomers: len(filtered),
		ActionCounts:   make(map[string]int),
	}

	valid := make(map[string]bool, len(Actions))
	for _, a := range Actions {
		valid[a] = true
	}
	for i := range filtered {
		r := &filtered[i]
		stats.TotalAmount += ParseAmount(r.TotalAmount)

		action := strings.TrimSpace(r.NextAction)
		switch {
		case valid[action]:
			stats.ActionCounts[action]++
			if UrgentActions[action] {
				stats.UrgentCount++
			}
		case IsUnsetAction(action):
			stats.ActionCounts[ActionUnset]++
		}
	}

	// 最終連絡日只解析一次
	contacts := make([]time.Time, len(all))
	parsed := make([]bool, len(all))
	for i := range all {
		contacts[i], parsed[i] = ParseDate(all[i].LastContactDate, now)
	}

	y, m, d := now.Date()
	loc := now.Location()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)

	for i := range all {
		if !parsed[i] || contacts[i].Before(monthStart) {
			continue
		}
		stats.ContactsThisMonth++
		if all[i].TransactionCountValue() == 0 {
			stats.NewCustomersThisMonth++
		}
	}

	countBetween := func(from, to time.Time) int {
		n := 0
		for i := range all {
			if parsed[i] && !contacts[i].Before(from) && contacts[i].Before(to) {
				n++
			}
		}
		return n
	}
	amountBetween := func(from, to time.Time) int64 {
		var sum int64
		for i := range all {
			if parsed[i] && !contacts[i].Before(from) && contacts[i].Before(to) {
				sum += ParseAmount(all[i].TotalAmount)
			}
		}
		return sum
	}

	for i := 29; i >= 0; i-- {
		day := time.Date(y, m, d-i, 0, 0, 0, 0, loc)
		stats.DailyContacts = append(stats.DailyContacts, DayCount{
			Date:  day,
			Count: countBetween(day, day.AddDate(0, 0, 1)),
		})
	}
	for i := 11; i >= 0; i-- {
		start := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, loc)
		stats.MonthlyContacts = append(stats.MonthlyContacts, MonthCount{
			Month: start,
			Count: countBetween(start, start.AddDate(0, 1, 0)),
		})
	}
	for i := 5; i >= 0; i-- {
		start := time.Date(y, m-time.Month(i), 1, 0, 0, 0, 0, loc)
		stats.MonthlySales = append(stats.MonthlySales, MonthAmount{
			Month:  start,
			Amount: amountBetween(start, start.AddDate(0, 1, 0)),
		})
	}
	for i := 2; i >= 0; i-- {
		start := time.Date(y-i, time.January, 1, 0, 0, 0, 0, loc)
		stats.YearlySales = append(stats.YearlySales, YearAmount{
			Year:   y - i,
			Amount: amountBetween(start, start.AddDate(1, 0, 0)),
		})
	}

	return stats
}
