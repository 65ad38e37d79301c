package persistence

import (
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/notification"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM DispatchRepository 實作
// ===========================

// defaultHistoryLimit FindRecent 未指定筆數時的預設值
const defaultHistoryLimit = 20

// GORMDispatchRepository 派送紀錄倉儲
type GORMDispatchRepository struct {
	db *gorm.DB
}

// NewDispatchRepository 創建派送紀錄倉儲
func NewDispatchRepository(db *gorm.DB) notification.DispatchRepository {
	return &GORMDispatchRepository{db: db}
}

// Save 新增一筆派送紀錄
func (r *GORMDispatchRepository) Save(ctx shared.TransactionContext, d *notification.Dispatch) error {
	db := dbFrom(ctx, r.db)

	if err := db.Create(dispatchToGORM(d)).Error; err != nil {
		return notification.ErrDispatchLogFailed.WithContext(
			"dispatch_id", d.ID().String(),
			"database_error", err.Error(),
		)
	}
	return nil
}

// FindRecent 依派送時間倒序取得最近 limit 筆
func (r *GORMDispatchRepository) FindRecent(ctx shared.TransactionContext, limit int) ([]*notification.Dispatch, error) {
	db := dbFrom(ctx, r.db)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var models []DispatchLogModel
	err := db.Order("dispatched_at DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, notification.ErrDispatchLogFailed.WithContext("database_error", err.Error())
	}

	dispatches := make([]*notification.Dispatch, 0, len(models))
	for i := range models {
		d, err := dispatchToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		dispatches = append(dispatches, d)
	}
	return dispatches, nil
}
