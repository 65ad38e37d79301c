package customer

import "context"

// ===========================
// Repository Interface
// ===========================

// Reader 讀取目前的顧客列表
type Reader interface {
	Load(ctx context.Context) ([]Record, error)
}

// Repository 顧客表的儲存介面
//
// 實作（Markdown 檔案）為整表覆寫：沒有逐列更新，也沒有刪除。
//
// Load：
// - 每筆記錄都分配新的 RecordKey
// - 尚未建立檔案時返回空列表
//
// SaveAll：
// - 以 records 取代整張表（last write wins）
// - 備份失敗不影響主要寫入
//
// Revision：
// - 目前儲存內容的識別值，內容改變時值也改變
// - 尚未建立檔案時返回空字串
// - 用來偵測手動編輯等外部修改
type Repository interface {
	Reader
	SaveAll(ctx context.Context, records []Record) error
	Revision(ctx context.Context) (string, error)
}
