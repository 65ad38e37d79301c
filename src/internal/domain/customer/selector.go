package customer

import (
	"sort"
	"strings"
	"time"
)

// DefaultHorizonDays 預設通知範圍：今天與明天
const DefaultHorizonDays = 1

// DueCustomer 需要通知的顧客
type DueCustomer struct {
	Record

	// EffectiveDate 判斷用的預定日（YYYY/MM/DD）
	EffectiveDate string
	// Computed 預定日是否由推算而來（檔案中沒有有效值）
	Computed bool
}

// EffectiveScheduledDate 判斷通知用的預定日
//
// 優先使用記錄中保存的 ScheduledDate（非空、非「-」且可解析），
// 否則以 ScheduleCalculator 推算。
func EffectiveScheduledDate(r Record, calc *ScheduleCalculator) (date time.Time, computed bool, ok bool) {
	now := calc.Now()
	stored := strings.TrimSpace(r.ScheduledDate)
	if stored != "" && stored != "-" {
		if t, parsed := ParseDate(stored, now); parsed {
			return t, false, true
		}
	}

	last := strings.TrimSpace(r.LastContactDate)
	if last == "" || last == "-" {
		return time.Time{}, false, false
	}
	t, ok := calc.ComputeDate(r.NextAction, last)
	return t, true, ok
}

// SelectDue 篩選預定日在 [今天, 今天+horizonDays] 內的顧客
//
// 排除條件：動作為空、「-」或「完了」。
// 比較以日曆天為單位（今天的時間歸零）。
// 結果依 ActionPriority 穩定排序。
func SelectDue(records []Record, horizonDays int, calc *ScheduleCalculator) []DueCustomer {
	if horizonDays < 0 {
		horizonDays = 0
	}
	today := StartOfDay(calc.Now())

	due := make([]DueCustomer, 0)
	for _, r := range records {
		action := strings.TrimSpace(r.NextAction)
		if action == "" || action == "-" || action == ActionDone {
			continue
		}

		date, computed, ok := EffectiveScheduledDate(r, calc)
		if !ok {
			continue
		}

		diff := DaysBetween(today, date)
		if diff < 0 || diff > horizonDays {
			continue
		}

		due = append(due, DueCustomer{
			Record:        r,
			EffectiveDate: FormatDate(date),
			Computed:      computed,
		})
	}

	sort.SliceStable(due, func(i, j int) bool {
		return ActionPriority(due[i].NextAction) < ActionPriority(due[j].NextAction)
	})
	return due
}
