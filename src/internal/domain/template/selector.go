package template

import "github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"

// Select 為顧客挑選範本
//
// 候補：Actions 任一項包含於顧客動作關鍵字中的定義。
// 指定語氣時依序優先：
//  1. 該語氣中 existing 條件與顧客相符者
//  2. 該語氣中無條件者
//  3. 該語氣的第一個候補
//
// 該語氣沒有候補時，以相同規則套用於全部候補。
func Select(defs []Definition, r customer.Record, variant Variant) (Definition, bool) {
	action := customer.ActionKeyword(r.NextAction)
	candidates := make([]Definition, 0, len(defs))
	for i := range defs {
		if defs[i].matchesAction(action) {
			candidates = append(candidates, defs[i])
		}
	}
	if len(candidates) == 0 {
		return Definition{}, false
	}

	existing := r.IsExisting()

	if variant != VariantAny {
		var scoped []Definition
		for _, d := range candidates {
			if d.Variant == variant {
				scoped = append(scoped, d)
			}
		}
		if d, ok := pick(scoped, existing); ok {
			return d, true
		}
	}
	return pick(candidates, existing)
}

// Pair 正式與輕鬆兩種語氣的範本
type Pair struct {
	Formal *Definition
	Casual *Definition
}

// SelectPair 同時挑選兩種語氣
func SelectPair(defs []Definition, r customer.Record) Pair {
	var p Pair
	if d, ok := Select(defs, r, VariantFormal); ok {
		p.Formal = &d
	}
	if d, ok := Select(defs, r, VariantCasual); ok {
		p.Casual = &d
	}
	return p
}

func pick(candidates []Definition, existing bool) (Definition, bool) {
	for _, d := range candidates {
		if d.hasExistingCondition() && *d.Condition.Existing == existing {
			return d, true
		}
	}
	for _, d := range candidates {
		if d.Condition == nil {
			return d, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return Definition{}, false
}
