package customer_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	// Arrange
	fresh := newRecord("fresh", "リコンタクト", "2025/11/03")
	fresh.TransactionCount = "0"
	fresh.TotalAmount = "3万"

	regular := newRecord("regular", "フォローアップ", "2025/11/17")
	regular.TransactionCount = "4"
	regular.TotalAmount = "10000円"

	lastMonth := newRecord("last-month", "完了", "2025/10/20")
	lastMonth.TotalAmount = "5000"

	lastYear := newRecord("last-year", "", "2024/06/01")
	lastYear.TotalAmount = "1万"

	junk := newRecord("junk", "https://example.com", "-")

	all := []customer.Record{fresh, regular, lastMonth, lastYear, junk}

	// Act
	stats := customer.Summarize(all, all, frozenNow)

	// Assert
	assert.Equal(t, 5, stats.TotalCustomers)
	assert.Equal(t, int64(30000+10000+5000+10000), stats.TotalAmount)
	assert.Equal(t, 2, stats.UrgentCount)
	assert.Equal(t, map[string]int{
		"リコンタクト":  1,
		"フォローアップ": 1,
		"完了":      1,
		"未設定":     1,
	}, stats.ActionCounts)

	assert.Equal(t, 2, stats.ContactsThisMonth)
	assert.Equal(t, 1, stats.NewCustomersThisMonth)

	require.Len(t, stats.DailyContacts, 30)
	assert.Equal(t, 1, stats.DailyContacts[29].Count, "today")
	assert.True(t, stats.DailyContacts[29].Date.Equal(time.Date(2025, 11, 17, 0, 0, 0, 0, time.Local)))

	require.Len(t, stats.MonthlyContacts, 12)
	assert.Equal(t, 2, stats.MonthlyContacts[11].Count)
	assert.Equal(t, 1, stats.MonthlyContacts[10].Count)

	require.Len(t, stats.MonthlySales, 6)
	assert.Equal(t, int64(40000), stats.MonthlySales[5].Amount)
	assert.Equal(t, int64(5000), stats.MonthlySales[4].Amount)

	require.Len(t, stats.YearlySales, 3)
	assert.Equal(t, customer.YearAmount{Year: 2024, Amount: 10000}, stats.YearlySales[1])
	assert.Equal(t, customer.YearAmount{Year: 2025, Amount: 45000}, stats.YearlySales[2])
}
