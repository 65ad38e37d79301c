package customer

import (
	"strings"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
)

// ===========================
// Record 顧客記錄
// ===========================

// RecordMarker 記錄鍵的標記類型
type RecordMarker struct{}

// RecordKey 顧客記錄的穩定鍵
//
// 讀入時產生，不寫回 Markdown 檔案。
// 編輯操作以鍵定位記錄，不依賴列順序或顧客名。
type RecordKey = shared.EntityID[RecordMarker]

// NewRecordKey 產生新的記錄鍵
func NewRecordKey() RecordKey {
	return shared.NewEntityID[RecordMarker]()
}

// RecordKeyFromString 解析記錄鍵
func RecordKeyFromString(s string) (RecordKey, error) {
	return shared.EntityIDFromString[RecordMarker](s, ErrInvalidRecordKey)
}

// Record 顧客表中的一列
//
// ScheduledDate 是衍生欄位：永遠由 NextAction + LastContactDate 推算，
// 檔案中保存的值只是快取。
type Record struct {
	Key RecordKey

	CustomerName     string
	NextAction       string
	ContactURL       string
	HasHeart         bool
	HasTrouble       bool
	IsFavorite       bool
	LastContactDate  string
	ScheduledDate    string
	TransactionCount string
	TotalAmount      string
	Gender           string
	Age              string
	Notes            string
}

// Field 可編輯的文字欄位名稱（與 API 欄位名一致）
type Field string

const (
	FieldCustomerName     Field = "customerName"
	FieldNextAction       Field = "nextAction"
	FieldContactURL       Field = "contactUrl"
	FieldLastContactDate  Field = "lastContactDate"
	FieldScheduledDate    Field = "scheduledDate"
	FieldTransactionCount Field = "transactionCount"
	FieldTotalAmount      Field = "totalAmount"
	FieldGender           Field = "gender"
	FieldAge              Field = "age"
	FieldNotes            Field = "notes"
)

// Tag 手動標記
type Tag string

const (
	TagHeart    Tag = "heart"
	TagTrouble  Tag = "trouble"
	TagFavorite Tag = "favorite"
)

// ParseTag 解析標記名稱
func ParseTag(s string) (Tag, error) {
	switch Tag(strings.ToLower(strings.TrimSpace(s))) {
	case TagHeart:
		return TagHeart, nil
	case TagTrouble:
		return TagTrouble, nil
	case TagFavorite:
		return TagFavorite, nil
	}
	return "", ErrUnknownTag.WithContext("tag", s)
}

// SetField 修改文字欄位
//
// 返回值 affectsSchedule 表示是否需要重新推算實行預定日。
// scheduledDate 為唯讀欄位，返回 ErrReadOnlyField。
func (r *Record) SetField(field Field, value string) (affectsSchedule bool, err error) {
	switch field {
	case FieldCustomerName:
		r.CustomerName = value
	case FieldNextAction:
		r.NextAction = value
		return true, nil
	case FieldContactURL:
		r.ContactURL = value
	case FieldLastContactDate:
		r.LastContactDate = value
		return true, nil
	case FieldTransactionCount:
		r.TransactionCount = value
	case FieldTotalAmount:
		r.TotalAmount = value
	case FieldGender:
		r.Gender = value
	case FieldAge:
		r.Age = value
	case FieldNotes:
		r.Notes = value
	case FieldScheduledDate:
		return false, ErrReadOnlyField
	default:
		return false, ErrUnknownField.WithContext("field", string(field))
	}
	return false, nil
}

// Tagged 讀取標記
func (r *Record) Tagged(tag Tag) bool {
	switch tag {
	case TagHeart:
		return r.HasHeart
	case TagTrouble:
		return r.HasTrouble
	case TagFavorite:
		return r.IsFavorite
	}
	return false
}

// SetTag 設定標記
func (r *Record) SetTag(tag Tag, on bool) error {
	switch tag {
	case TagHeart:
		r.HasHeart = on
	case TagTrouble:
		r.HasTrouble = on
	case TagFavorite:
		r.IsFavorite = on
	default:
		return ErrUnknownTag.WithContext("tag", string(tag))
	}
	return nil
}

// ToggleTag 反轉標記，返回新值
func (r *Record) ToggleTag(tag Tag) (bool, error) {
	next := !r.Tagged(tag)
	if err := r.SetTag(tag, next); err != nil {
		return false, err
	}
	return next, nil
}

// textValues 所有文字欄位（搜尋用，不含布林標記）
func (r *Record) textValues() []string {
	return []string{
		r.CustomerName,
		r.NextAction,
		r.ContactURL,
		r.LastContactDate,
		r.ScheduledDate,
		r.TransactionCount,
		r.TotalAmount,
		r.Gender,
		r.Age,
		r.Notes,
	}
}

// TransactionCountValue 取引回數（寬鬆解析，空白或無法解析視為 0）
func (r *Record) TransactionCountValue() int {
	n, ok := leadingInt(r.TransactionCount)
	if !ok {
		return 0
	}
	return n
}

// IsExisting 是否為既有顧客（有交易次數或金額）
func (r *Record) IsExisting() bool {
	return r.TransactionCountValue() > 0 || ParseAmount(r.TotalAmount) > 0
}
