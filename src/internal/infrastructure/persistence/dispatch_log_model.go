package persistence

import "time"

// DispatchLogModel 通知派送紀錄
type DispatchLogModel struct {
	ID            string    `gorm:"type:uuid;primary_key"`
	Channel       string    `gorm:"type:varchar(20);not null"`
	CustomerCount int       `gorm:"not null;default:0"`
	CustomerNames []string  `gorm:"type:text;serializer:json"`
	Status        string    `gorm:"type:varchar(20);index;not null"` // sent, failed, skipped
	ErrorMessage  string    `gorm:"type:text"`
	DispatchedAt  time.Time `gorm:"index;not null"`
	CreatedAt     time.Time
}

// TableName 指定表名
func (DispatchLogModel) TableName() string {
	return "notification_dispatch_logs"
}
