package shared

import "time"

// Clock 時間來源介面
//
// 排程日期計算依賴「現在」，測試時以 FixedClock 凍結時間。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系統時間
type SystemClock struct{}

// Now 返回目前本地時間
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock 固定時間（測試用）
type FixedClock struct {
	At time.Time
}

// Now 返回固定時間
func (c FixedClock) Now() time.Time {
	return c.At
}
