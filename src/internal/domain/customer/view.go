package customer

import (
	"sort"
	"strings"
	"time"
)

// ===========================
// 篩選與排序
// ===========================

// Filter 列表篩選條件，各條件以 AND 組合
type Filter struct {
	Action          string // 動作標籤子字串
	Search          string // 全文搜尋（不分大小寫，不含布林欄位）
	Favorite        *bool  // nil = 不篩選
	Trouble         *bool  // nil = 不篩選
	Gender          string
	Age             string
	MinTransactions string // 寬鬆解析，空白 = 不篩選
}

// Matches 判斷記錄是否符合篩選條件
func (f Filter) Matches(r *Record) bool {
	if f.Action != "" && !strings.Contains(r.NextAction, f.Action) {
		return false
	}
	if f.Favorite != nil && r.IsFavorite != *f.Favorite {
		return false
	}
	if f.Trouble != nil && r.HasTrouble != *f.Trouble {
		return false
	}
	if f.Gender != "" && r.Gender != f.Gender {
		return false
	}
	if f.Age != "" && r.Age != f.Age {
		return false
	}
	if strings.TrimSpace(f.MinTransactions) != "" {
		if min, ok := leadingInt(f.MinTransactions); ok && r.TransactionCountValue() < min {
			return false
		}
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	for _, v := range r.textValues() {
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

// 儀表板欄位順序
const (
	ColumnFavorite = iota
	ColumnTrouble
	ColumnCustomerName
	ColumnNextAction
	ColumnContactURL
	ColumnLastContactDate
	ColumnScheduledDate
	ColumnTransactionCount
	ColumnTotalAmount
	ColumnGender
	ColumnAge
	ColumnNotes
	columnCount
)

// Direction 排序方向
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState 排序狀態，Column < 0 表示不排序
type SortState struct {
	Column    int
	Direction Direction
}

// DefaultSort 預設以最終連絡日升冪排序
func DefaultSort() SortState {
	return SortState{Column: ColumnLastContactDate, Direction: Ascending}
}

// Unsorted 保持原始順序
func Unsorted() SortState {
	return SortState{Column: -1, Direction: Ascending}
}

// Select 點選欄位：同一欄切換方向，新欄位重設為升冪
func (s SortState) Select(column int) SortState {
	if s.Column == column {
		if s.Direction == Ascending {
			return SortState{Column: column, Direction: Descending}
		}
		return SortState{Column: column, Direction: Ascending}
	}
	return SortState{Column: column, Direction: Ascending}
}

// dateSentinel 無法解析的日期排在最前面
var dateSentinel = time.Date(1900, 1, 1, 0, 0, 0, 0, time.Local).UnixMilli()

// sortKey 欄位排序值（數值或字串）
type sortKey struct {
	numeric bool
	num     float64
	str     string
}

func (k sortKey) less(o sortKey) bool {
	if k.numeric && o.numeric {
		return k.num < o.num
	}
	return k.str < o.str
}

func columnKey(r *Record, column int, now time.Time) sortKey {
	switch column {
	case ColumnFavorite:
		return boolKey(r.IsFavorite)
	case ColumnTrouble:
		return boolKey(r.HasTrouble)
	case ColumnLastContactDate:
		return dateKey(r.LastContactDate, now)
	case ColumnScheduledDate:
		return dateKey(r.ScheduledDate, now)
	case ColumnTransactionCount:
		return sortKey{numeric: true, num: float64(r.TransactionCountValue())}
	case ColumnTotalAmount:
		return sortKey{numeric: true, num: float64(ParseAmount(r.TotalAmount))}
	case ColumnCustomerName:
		return sortKey{str: r.CustomerName}
	case ColumnNextAction:
		return sortKey{str: r.NextAction}
	case ColumnContactURL:
		return sortKey{str: r.ContactURL}
	case ColumnGender:
		return sortKey{str: r.Gender}
	case ColumnAge:
		return sortKey{str: r.Age}
	case ColumnNotes:
		return sortKey{str: r.Notes}
	}
	return sortKey{}
}

func boolKey(b bool) sortKey {
	if b {
		return sortKey{numeric: true, num: 1}
	}
	return sortKey{numeric: true, num: 0}
}

func dateKey(value string, now time.Time) sortKey {
	t, ok := ParseDate(value, now)
	if !ok {
		return sortKey{numeric: true, num: float64(dateSentinel)}
	}
	return sortKey{numeric: true, num: float64(t.UnixMilli())}
}

// View 篩選後排序，不修改輸入
//
// now 用於補齊「M/D」日期的年份。
func View(records []Record, f Filter, s SortState, now time.Time) []Record {
	out := make([]Record, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}

	if s.Column < 0 || s.Column >= columnCount {
		return out
	}

	return sortRecords(out, s, now)
}

// sortRecords 穩定排序，排序值只計算一次
func sortRecords(out []Record, s SortState, now time.Time) []Record {
	type keyed struct {
		rec Record
		key sortKey
	}
	items := make([]keyed, len(out))
	for i := range out {
		items[i] = keyed{rec: out[i], key: columnKey(&out[i], s.Column, now)}
	}
	desc := s.Direction == Descending
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return items[j].key.less(items[i].key)
		}
		return items[i].key.less(items[j].key)
	})
	for i := range items {
		out[i] = items[i].rec
	}
	return out
}
