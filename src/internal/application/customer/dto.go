package customer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

// ===========================
// RecordDTO 顧客記錄傳輸物件
// ===========================

// RecordDTO API 使用的顧客記錄（欄位名與前端一致）
type RecordDTO struct {
	Key              string      `json:"key,omitempty"`
	CustomerName     LooseString `json:"customerName"`
	NextAction       LooseString `json:"nextAction"`
	ContactURL       LooseString `json:"contactUrl"`
	HasHeart         LooseBool   `json:"hasHeart"`
	HasTrouble       LooseBool   `json:"hasTrouble"`
	IsFavorite       LooseBool   `json:"isFavorite"`
	LastContactDate  LooseString `json:"lastContactDate"`
	ScheduledDate    LooseString `json:"scheduledDate"`
	TransactionCount LooseString `json:"transactionCount"`
	TotalAmount      LooseString `json:"totalAmount"`
	Gender           LooseString `json:"gender"`
	Age              LooseString `json:"age"`
	Notes            LooseString `json:"notes"`
}

// ToRecord 轉為領域記錄
//
// Key 可解析時沿用，否則產生新鍵。
func (d RecordDTO) ToRecord() customer.Record {
	key, err := customer.RecordKeyFromString(d.Key)
	if err != nil || key.IsEmpty() {
		key = customer.NewRecordKey()
	}
	return customer.Record{
		Key:              key,
		CustomerName:     string(d.CustomerName),
		NextAction:       string(d.NextAction),
		ContactURL:       string(d.ContactURL),
		HasHeart:         bool(d.HasHeart),
		HasTrouble:       bool(d.HasTrouble),
		IsFavorite:       bool(d.IsFavorite),
		LastContactDate:  string(d.LastContactDate),
		ScheduledDate:    string(d.ScheduledDate),
		TransactionCount: string(d.TransactionCount),
		TotalAmount:      string(d.TotalAmount),
		Gender:           string(d.Gender),
		Age:              string(d.Age),
		Notes:            string(d.Notes),
	}
}

// FromRecord 由領域記錄建立 DTO
func FromRecord(r customer.Record) RecordDTO {
	return RecordDTO{
		Key:              r.Key.String(),
		CustomerName:     LooseString(r.CustomerName),
		NextAction:       LooseString(r.NextAction),
		ContactURL:       LooseString(r.ContactURL),
		HasHeart:         LooseBool(r.HasHeart),
		HasTrouble:       LooseBool(r.HasTrouble),
		IsFavorite:       LooseBool(r.IsFavorite),
		LastContactDate:  LooseString(r.LastContactDate),
		ScheduledDate:    LooseString(r.ScheduledDate),
		TransactionCount: LooseString(r.TransactionCount),
		TotalAmount:      LooseString(r.TotalAmount),
		Gender:           LooseString(r.Gender),
		Age:              LooseString(r.Age),
		Notes:            LooseString(r.Notes),
	}
}

// FromRecords 批次轉換
func FromRecords(records []customer.Record) []RecordDTO {
	out := make([]RecordDTO, len(records))
	for i, r := range records {
		out[i] = FromRecord(r)
	}
	return out
}

// ToRecords 批次轉換
func ToRecords(dtos []RecordDTO) []customer.Record {
	out := make([]customer.Record, len(dtos))
	for i, d := range dtos {
		out[i] = d.ToRecord()
	}
	return out
}

// ===========================
// 寬鬆型別
// ===========================

// LooseString 接受字串、數字、布林或 null 的文字欄位
//
// null 或缺少 → ""；數字保留原本的十進位表示。
type LooseString string

// UnmarshalJSON 實作 json.Unmarshaler
func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LooseString(v)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*s = LooseString(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("text field must be a string, number, boolean or null: %w", err)
		}
		*s = LooseString(n.String())
	}
	return nil
}

// LooseBool 接受布林、數字、字串或 null 的標記欄位
type LooseBool bool

// UnmarshalJSON 實作 json.Unmarshaler
//
// 數字非 0 為 true；字串為 true / 1 / ✓ / yes / on 時為 true。
func (b *LooseBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*b = false
	case bytes.Equal(data, []byte("true")):
		*b = true
	case bytes.Equal(data, []byte("false")):
		*b = false
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*b = LooseBool(truthy(v))
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("flag field must be a boolean, number, string or null: %w", err)
		}
		*b = f != 0
	}
	return nil
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "✓", "yes", "on":
		return true
	}
	return false
}
