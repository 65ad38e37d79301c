package persistence

import "github.com/jackyeh168/crm_dashboard/src/internal/domain/notification"

// dispatchToDomain GORM Model → Domain
//
// 資料庫中的 ID 或狀態無效時返回錯誤，不 panic。
func dispatchToDomain(model *DispatchLogModel) (*notification.Dispatch, error) {
	id, err := notification.DispatchIDFromString(model.ID)
	if err != nil {
		return nil, err
	}
	return notification.ReconstructDispatch(
		id,
		model.Channel,
		model.CustomerNames,
		notification.Status(model.Status),
		model.ErrorMessage,
		model.DispatchedAt,
	)
}

// dispatchToGORM Domain → GORM Model
func dispatchToGORM(d *notification.Dispatch) *DispatchLogModel {
	return &DispatchLogModel{
		ID:            d.ID().String(),
		Channel:       d.Channel(),
		CustomerCount: d.CustomerCount(),
		CustomerNames: d.CustomerNames(),
		Status:        string(d.Status()),
		ErrorMessage:  d.ErrorMessage(),
		DispatchedAt:  d.DispatchedAt(),
	}
}
