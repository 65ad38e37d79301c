package notification

import (
	"context"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
)

// Notifier 外部通知管道（Infrastructure Layer 實作）
type Notifier interface {
	// Channel 管道名稱，寫入派送紀錄
	Channel() string

	// Ready 檢查設定；未設定 URL 時返回 ErrWebhookNotConfigured
	Ready() error

	// Send 送出訊息，不重試
	Send(ctx context.Context, msg Message) error
}

// DispatchRepository 派送紀錄倉儲
type DispatchRepository interface {
	// Save 保存派送紀錄
	Save(ctx shared.TransactionContext, d *Dispatch) error

	// FindRecent 依時間倒序取得最近的紀錄
	FindRecent(ctx shared.TransactionContext, limit int) ([]*Dispatch, error)
}
