package notification

import "time"

// ===========================
// Dispatch 派送紀錄
// ===========================

// Status 派送結果
type Status string

const (
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped" // 沒有到期顧客，未送出
)

// IsValid 檢查狀態值
func (s Status) IsValid() bool {
	switch s {
	case StatusSent, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// ChannelDiscord 目前唯一的通知管道
const ChannelDiscord = "discord"

// Dispatch 一次通知檢查的結果紀錄
//
// 只作為稽核用途：排程與篩選邏輯從不讀回。
type Dispatch struct {
	id            DispatchID
	channel       string
	customerNames []string
	status        Status
	errorMessage  string
	dispatchedAt  time.Time
}

// RecordDispatch 記錄一次派送
//
// sendErr 非 nil 時狀態為 failed；沒有顧客時為 skipped。
func RecordDispatch(channel string, customerNames []string, sendErr error, at time.Time) *Dispatch {
	d := &Dispatch{
		id:            NewDispatchID(),
		channel:       channel,
		customerNames: append([]string(nil), customerNames...),
		status:        StatusSent,
		dispatchedAt:  at,
	}
	switch {
	case sendErr != nil:
		d.status = StatusFailed
		d.errorMessage = sendErr.Error()
	case len(customerNames) == 0:
		d.status = StatusSkipped
	}
	return d
}

// ReconstructDispatch 從持久化資料重建（不生成新 ID）
func ReconstructDispatch(
	id DispatchID,
	channel string,
	customerNames []string,
	status Status,
	errorMessage string,
	dispatchedAt time.Time,
) (*Dispatch, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidDispatchID.WithContext("reason", "empty dispatch ID in database")
	}
	if !status.IsValid() {
		return nil, ErrInvalidDispatch.WithContext("status", string(status))
	}
	return &Dispatch{
		id:            id,
		channel:       channel,
		customerNames: customerNames,
		status:        status,
		errorMessage:  errorMessage,
		dispatchedAt:  dispatchedAt,
	}, nil
}

func (d *Dispatch) ID() DispatchID          { return d.id }
func (d *Dispatch) Channel() string         { return d.channel }
func (d *Dispatch) CustomerCount() int      { return len(d.customerNames) }
func (d *Dispatch) Status() Status          { return d.status }
func (d *Dispatch) ErrorMessage() string    { return d.errorMessage }
func (d *Dispatch) DispatchedAt() time.Time { return d.dispatchedAt }

// CustomerNames 返回副本
func (d *Dispatch) CustomerNames() []string {
	return append([]string(nil), d.customerNames...)
}
