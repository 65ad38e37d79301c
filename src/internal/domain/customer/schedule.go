package customer

import (
	"strings"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
)

// ===========================
// ScheduleCalculator 實行預定日推算
// ===========================

// ScheduleCalculator 實行預定日推算領域服務
//
// 業務規則：
// 1. 動作為空、「未設定」或「完了」→ 無預定日
// 2. 最終連絡日無法解析 → 無預定日
// 3. 預定日 = 最終連絡日 + 動作間隔（見 OffsetDays）
// 4. 若預定日早於現在，改為 現在 + 動作間隔（不排在過去）
//
// 顯示、儲存、通知判斷共用同一個實例，避免規則分歧。
type ScheduleCalculator struct {
	clock shared.Clock
}

// NewScheduleCalculator 建構函數
func NewScheduleCalculator(clock shared.Clock) *ScheduleCalculator {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &ScheduleCalculator{clock: clock}
}

// Now 計算器使用的「現在」
func (c *ScheduleCalculator) Now() time.Time {
	return c.clock.Now()
}

// Compute 推算實行預定日，返回 YYYY/MM/DD 或空字串
func (c *ScheduleCalculator) Compute(nextAction, lastContactDate string) string {
	t, ok := c.ComputeDate(nextAction, lastContactDate)
	if !ok {
		return ""
	}
	return FormatDate(t)
}

// ComputeDate 同 Compute，返回日期（已截斷為午夜）
func (c *ScheduleCalculator) ComputeDate(nextAction, lastContactDate string) (time.Time, bool) {
	action := strings.TrimSpace(nextAction)
	if action == "" || action == ActionUnset {
		return time.Time{}, false
	}

	now := c.clock.Now()
	last, ok := ParseDate(lastContactDate, now)
	if !ok {
		return time.Time{}, false
	}

	days, ok := OffsetDays(action)
	if !ok {
		return time.Time{}, false
	}

	scheduled := last.AddDate(0, 0, days)
	if scheduled.Before(now) {
		scheduled = now.AddDate(0, 0, days)
	}
	return StartOfDay(scheduled), true
}

// Refresh 以目前規則重新推算記錄的預定日
func (c *ScheduleCalculator) Refresh(r *Record) {
	r.ScheduledDate = c.Compute(r.NextAction, r.LastContactDate)
}

// RefreshAll 重新推算所有記錄的預定日
func (c *ScheduleCalculator) RefreshAll(records []Record) {
	for i := range records {
		c.Refresh(&records[i])
	}
}
