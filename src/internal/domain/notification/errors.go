package notification

import "github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"

// ===========================
// Notification Domain 錯誤定義
// ===========================

const (
	ErrCodeWebhookNotConfigured shared.ErrorCode = "WEBHOOK_NOT_CONFIGURED"
	ErrCodeWebhookRejected      shared.ErrorCode = "WEBHOOK_REJECTED"
	ErrCodeInvalidDispatchID    shared.ErrorCode = "INVALID_DISPATCH_ID"
	ErrCodeInvalidDispatch      shared.ErrorCode = "INVALID_DISPATCH"
	ErrCodeDispatchLogFailed    shared.ErrorCode = "DISPATCH_LOG_FAILED"
)

var (
	// ErrWebhookNotConfigured 未設定 Webhook URL（該次呼叫失敗）
	ErrWebhookNotConfigured = shared.NewDomainError(ErrCodeWebhookNotConfigured, "DISCORD_WEBHOOK_URL が設定されていません")

	// ErrWebhookRejected Webhook 回應非 2xx
	//
	// Context 帶有 status 與 body。
	ErrWebhookRejected = shared.NewDomainError(ErrCodeWebhookRejected, "Discord通知送信に失敗")

	// ErrInvalidDispatchID 派送紀錄 ID 無效
	ErrInvalidDispatchID = shared.NewDomainError(ErrCodeInvalidDispatchID, "派送紀錄 ID 格式無效")

	// ErrInvalidDispatch 派送紀錄資料不一致（通常來自資料庫損壞）
	ErrInvalidDispatch = shared.NewDomainError(ErrCodeInvalidDispatch, "派送紀錄資料無效")

	// ErrDispatchLogFailed 派送紀錄讀寫失敗
	ErrDispatchLogFailed = shared.NewDomainError(ErrCodeDispatchLogFailed, "派送紀錄讀寫失敗")
)
