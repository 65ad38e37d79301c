package markdown

import (
	"strings"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

// ===========================
// 顧客表格式
// ===========================

// 欄位標題
const (
	labelCustomerName     = "顧客名"
	labelNextAction       = "次のアクション"
	labelContactURL       = "連絡先"
	labelHeart            = "♥"
	labelTrouble          = "✗"
	labelFavorite         = "⭐"
	labelLastContactDate  = "最終連絡日"
	labelScheduledDate    = "実行予定日"
	labelTransactionCount = "取引回数"
	labelTotalAmount      = "総額"
	labelGender           = "性別"
	labelAge              = "年齢"
	labelNotes            = "関係性/メモ"
)

// TableHeader 目前的 13 欄標題列
const TableHeader = "| 顧客名 | 次のアクション | 連絡先 | ♥ | ✗ | ⭐ | 最終連絡日 | 実行予定日 | 取引回数 | 総額 | 性別 | 年齢 | 関係性/メモ |"

// TableSeparator 固定的分隔列
const TableSeparator = "|--------|-------------|--------|----|----|----|------------|----------|----------|------|------|------|-------------|"

// LegacyTableHeader 舊版 10 欄標題列（沒有標記欄）
const LegacyTableHeader = "| 顧客名 | 最終連絡日 | 次のアクション | 実行予定日 | 連絡先 | 取引回数 | 総額 | 性別 | 年齢 | 関係性/メモ |"

const (
	emptyCell = "-"
	checkMark = "✓"
	utf8BOM   = "\ufeff"
)

// column 欄位與記錄欄位的對應
type column struct {
	label string
	get   func(r *customer.Record) string
	set   func(r *customer.Record, v string)
}

func textColumn(label string, field func(r *customer.Record) *string) column {
	return column{
		label: label,
		get:   func(r *customer.Record) string { return formatText(*field(r)) },
		set:   func(r *customer.Record, v string) { *field(r) = readText(v) },
	}
}

func tagColumn(label string, field func(r *customer.Record) *bool) column {
	return column{
		label: label,
		get:   func(r *customer.Record) string { return formatTag(*field(r)) },
		set:   func(r *customer.Record, v string) { *field(r) = readTag(v) },
	}
}

// columns 寫出時的欄位順序（與 TableHeader 一致）
var columns = []column{
	textColumn(labelCustomerName, func(r *customer.Record) *string { return &r.CustomerName }),
	textColumn(labelNextAction, func(r *customer.Record) *string { return &r.NextAction }),
	textColumn(labelContactURL, func(r *customer.Record) *string { return &r.ContactURL }),
	tagColumn(labelHeart, func(r *customer.Record) *bool { return &r.HasHeart }),
	tagColumn(labelTrouble, func(r *customer.Record) *bool { return &r.HasTrouble }),
	tagColumn(labelFavorite, func(r *customer.Record) *bool { return &r.IsFavorite }),
	textColumn(labelLastContactDate, func(r *customer.Record) *string { return &r.LastContactDate }),
	textColumn(labelScheduledDate, func(r *customer.Record) *string { return &r.ScheduledDate }),
	textColumn(labelTransactionCount, func(r *customer.Record) *string { return &r.TransactionCount }),
	textColumn(labelTotalAmount, func(r *customer.Record) *string { return &r.TotalAmount }),
	textColumn(labelGender, func(r *customer.Record) *string { return &r.Gender }),
	textColumn(labelAge, func(r *customer.Record) *string { return &r.Age }),
	textColumn(labelNotes, func(r *customer.Record) *string { return &r.Notes }),
}

var columnsByLabel = func() map[string]column {
	m := make(map[string]column, len(columns))
	for _, c := range columns {
		m[c.label] = c
	}
	return m
}()

// ===========================
// 寫出
// ===========================

// RenderTable 將記錄輸出為 Markdown 表格（不含結尾換行）
func RenderTable(records []customer.Record) string {
	lines := make([]string, 0, len(records)+2)
	lines = append(lines, TableHeader, TableSeparator)

	cells := make([]string, len(columns))
	for i := range records {
		for j, c := range columns {
			cells[j] = c.get(&records[i])
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return strings.Join(lines, "\n")
}

var cellEscaper = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "|", `\|`)

func formatText(v string) string {
	if strings.TrimSpace(v) == "" {
		return emptyCell
	}
	return strings.TrimSpace(cellEscaper.Replace(v))
}

func formatTag(v bool) string {
	if v {
		return checkMark
	}
	return emptyCell
}

// ===========================
// 讀入
// ===========================

// ParseTable 解析文件中的顧客表
//
// 規則：
// - 去除 UTF-8 BOM
// - 從第一個含「顧客名」的「|」列開始，依標題名稱對應欄位（新舊格式皆可）
// - 略過分隔列與空行，遇到第一個非表格列即停止
// - 以未跳脫的「|」切割，還原「\|」
// - 「-」視為空白；標記欄為「✓」或「true」時為 true
// - 欄數少於標題的列略過
//
// 每筆記錄都會產生新的 RecordKey。
func ParseTable(text string) []customer.Record {
	text = strings.TrimPrefix(text, utf8BOM)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	records := make([]customer.Record, 0)
	var header []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if header == nil {
			if strings.HasPrefix(line, "|") && strings.Contains(line, labelCustomerName) {
				header = splitRow(line)
			}
			continue
		}

		if line == "" || isSeparator(line) {
			continue
		}
		if !strings.HasPrefix(line, "|") {
			break
		}

		cells := splitRow(line)
		if len(cells) < len(header) {
			continue
		}

		r := customer.Record{Key: customer.NewRecordKey()}
		for i, label := range header {
			if c, ok := columnsByLabel[label]; ok {
				c.set(&r, cells[i])
			}
		}
		records = append(records, r)
	}
	return records
}

func isSeparator(line string) bool {
	return strings.HasPrefix(line, "|---") || strings.HasPrefix(line, "| ---") || strings.HasPrefix(line, "|:--")
}

// splitRow 切割表格列，保留跳脫的「|」
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var (
		cells []string
		cell  strings.Builder
	)
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cell.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(line[i])
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}

func readText(v string) string {
	v = strings.TrimSpace(v)
	if v == emptyCell {
		return ""
	}
	return v
}

func readTag(v string) bool {
	v = strings.TrimSpace(v)
	return v == checkMark || v == "true"
}
