package customer_test

import (
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
)

// frozenNow 測試用的「現在」：2025/11/17 10:30（本地時間）
var frozenNow = time.Date(2025, 11, 17, 10, 30, 0, 0, time.Local)

func newCalculator() *customer.ScheduleCalculator {
	return customer.NewScheduleCalculator(shared.FixedClock{At: frozenNow})
}

// day 相對 frozenNow 的日期字串
func day(offset int) string {
	return customer.FormatDate(frozenNow.AddDate(0, 0, offset))
}

func newRecord(name, action, lastContact string) customer.Record {
	return customer.Record{
		Key:             customer.NewRecordKey(),
		CustomerName:    name,
		NextAction:      action,
		LastContactDate: lastContact,
	}
}

func names(records []customer.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.CustomerName
	}
	return out
}
