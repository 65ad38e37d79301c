package persistence

import (
	"testing"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/notification"
	"gorm.io/gorm"
)

// ===========================
// 測試輔助函數
// ===========================

// setupTestDB 創建測試用的 SQLite in-memory 資料庫
//
// 每個測試使用獨立的 in-memory DB，返回清理函數。
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}
	return db, cleanup
}

// newTestDispatch 建立測試用派送紀錄
func newTestDispatch(at time.Time, names ...string) *notification.Dispatch {
	return notification.RecordDispatch(notification.ChannelDiscord, names, nil, at)
}
