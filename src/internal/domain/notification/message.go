package notification

import (
	"fmt"
	"strings"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

// DefaultUsername Webhook 顯示名稱
const DefaultUsername = "営業通知Bot"

// Message 送往通知管道的訊息
type Message struct {
	Content  string
	Username string
}

// BuildMessage 組出營業動作通知內容
//
// due 需已依優先度排序（SelectDue 的輸出）。
// 沒有到期顧客時返回 false，呼叫端不應送出。
func BuildMessage(due []customer.DueCustomer, username string) (Message, bool) {
	if len(due) == 0 {
		return Message{}, false
	}
	if username == "" {
		username = DefaultUsername
	}

	var b strings.Builder
	b.WriteString("📢 **営業アクション通知**\n\n")
	fmt.Fprintf(&b, "今日対応すべき顧客: **%d件**\n\n", len(due))

	for i, c := range due {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, c.CustomerName)
		fmt.Fprintf(&b, "   - アクション: %s\n", c.NextAction)
		if c.EffectiveDate != "" {
			fmt.Fprintf(&b, "   - 実行予定日: %s", c.EffectiveDate)
			if c.Computed {
				b.WriteString(" (計算値)")
			}
			b.WriteString("\n")
		}
		writeOptional(&b, "最終連絡日", c.LastContactDate)
		writeOptional(&b, "連絡先", c.ContactURL)
		writeOptional(&b, "総額", c.TotalAmount)
		b.WriteString("\n")
	}

	return Message{Content: b.String(), Username: username}, true
}

func writeOptional(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return
	}
	fmt.Fprintf(b, "   - %s: %s\n", label, value)
}
