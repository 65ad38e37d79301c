package customer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/width"
)

var amountNumberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

var (
	tenThousand = decimal.NewFromInt(10000)
	two         = decimal.NewFromInt(2)
)

// ParseAmount 解析「総額」自由文字為整數金額
//
// 業務規則：
// - 沒有數字 → 0
// - 一個數字 → 該值
// - 兩個以上 → 前兩個的平均（視為「5-10万」這類區間）
// - 含「万」→ ×10,000
// - 最後四捨五入為整數
//
// 僅供排序與統計，不會改寫儲存的文字。
func ParseAmount(text string) int64 {
	s := width.Narrow.String(text)
	matches := amountNumberPattern.FindAllString(s, 2)
	if len(matches) == 0 {
		return 0
	}

	amount, err := decimal.NewFromString(matches[0])
	if err != nil {
		return 0
	}
	if len(matches) > 1 {
		second, err := decimal.NewFromString(matches[1])
		if err == nil {
			amount = amount.Add(second).Div(two)
		}
	}

	if strings.Contains(s, "万") {
		amount = amount.Mul(tenThousand)
	}
	return amount.Round(0).IntPart()
}
