package customer

import "github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"

// ===========================
// Customer Domain 錯誤定義
// ===========================

// Customer Domain 錯誤代碼常量
const (
	ErrCodeInvalidRecordKey shared.ErrorCode = "INVALID_RECORD_KEY"
	ErrCodeRecordNotFound   shared.ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeUnknownField     shared.ErrorCode = "UNKNOWN_FIELD"
	ErrCodeReadOnlyField    shared.ErrorCode = "READ_ONLY_FIELD"
	ErrCodeUnknownTag       shared.ErrorCode = "UNKNOWN_TAG"
)

var (
	// ErrInvalidRecordKey 記錄鍵格式無效（不是 UUID）
	ErrInvalidRecordKey = shared.NewDomainError(ErrCodeInvalidRecordKey, "顧客記錄鍵格式無效")

	// ErrRecordNotFound 找不到指定鍵的顧客記錄
	ErrRecordNotFound = shared.NewDomainError(ErrCodeRecordNotFound, "顧客記錄不存在")

	// ErrUnknownField 欄位名稱不在顧客記錄中
	ErrUnknownField = shared.NewDomainError(ErrCodeUnknownField, "未知的顧客欄位")

	// ErrReadOnlyField 嘗試直接修改衍生欄位
	//
	// 觸發條件：
	// - 修改 scheduledDate（由 nextAction + lastContactDate 推算）
	ErrReadOnlyField = shared.NewDomainError(ErrCodeReadOnlyField, "實行預定日為自動計算欄位，無法直接修改")

	// ErrUnknownTag 標記名稱無效（只接受 heart / trouble / favorite）
	ErrUnknownTag = shared.NewDomainError(ErrCodeUnknownTag, "未知的顧客標記")
)
