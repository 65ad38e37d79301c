package notification

import "github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"

// DispatchMarker 是 DispatchID 的標記類型
type DispatchMarker struct{}

// DispatchID 派送紀錄的唯一標識符
type DispatchID = shared.EntityID[DispatchMarker]

// NewDispatchID 生成新的派送紀錄 ID
func NewDispatchID() DispatchID {
	return shared.NewEntityID[DispatchMarker]()
}

// DispatchIDFromString 從字串解析 DispatchID
func DispatchIDFromString(s string) (DispatchID, error) {
	return shared.EntityIDFromString[DispatchMarker](s, ErrInvalidDispatchID)
}
