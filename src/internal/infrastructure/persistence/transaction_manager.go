package persistence

import (
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager 以 gorm.DB.Transaction 實作 shared.TransactionManager
//
// fn 返回錯誤時回滾；fn panic 時回滾並重新拋出。
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 建立事務管理器
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在事務中執行 fn
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}
