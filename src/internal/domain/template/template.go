package template

import "strings"

// ===========================
// 訊息範本定義
// ===========================

// Variant 語氣
type Variant string

const (
	VariantFormal Variant = "formal"
	VariantCasual Variant = "casual"
	// VariantAny 不指定語氣
	VariantAny Variant = ""
)

// Condition 範本適用條件
type Condition struct {
	// Existing nil 表示不限；否則只適用於既有／新顧客
	Existing *bool `json:"existing,omitempty"`
}

// Definition 範本檔中的一筆定義（唯讀）
type Definition struct {
	ID           string     `json:"id"`
	Actions      []string   `json:"actions"`
	Title        string     `json:"title"`
	Variant      Variant    `json:"variant,omitempty"`
	Condition    *Condition `json:"condition,omitempty"`
	Placeholders []string   `json:"placeholders,omitempty"`
	Body         string     `json:"template"`
}

// matchesAction 範本的任一動作包含於顧客動作中
func (d *Definition) matchesAction(action string) bool {
	for _, a := range d.Actions {
		if a != "" && strings.Contains(action, a) {
			return true
		}
	}
	return false
}

// hasExistingCondition 是否有 existing 條件
func (d *Definition) hasExistingCondition() bool {
	return d.Condition != nil && d.Condition.Existing != nil
}
