package customer

import "strings"

// ===========================
// 次のアクション 詞彙
// ===========================

// 動作標籤
const (
	ActionNewProposal    = "新規提案"
	ActionRecontact      = "リコンタクト"
	ActionFollowUp       = "フォローアップ"
	ActionRemind         = "リマインド"
	ActionClosing        = "クロージング"
	ActionInProgress     = "取引中"
	ActionRepeatProposal = "リピート提案"
	ActionDone           = "完了"

	// ActionUnset UI 上表示的「未設定」
	ActionUnset = "未設定"
)

// Actions 動作詞彙（下拉選單順序）
var Actions = []string{
	ActionNewProposal,
	ActionRecontact,
	ActionFollowUp,
	ActionRemind,
	ActionClosing,
	ActionInProgress,
	ActionRepeatProposal,
	ActionDone,
}

// UrgentActions 儀表板計為「緊急」的動作
var UrgentActions = map[string]bool{
	ActionRecontact: true,
	ActionFollowUp:  true,
}

// defaultOffsetDays 未列出動作的預設間隔
const defaultOffsetDays = 14

// actionOffsets 關鍵字 → 間隔天數，依序比對，先匹配者優先
var actionOffsets = []struct {
	keyword string
	days    int
}{
	{ActionRecontact, 5},
	{ActionFollowUp, 9},
	{ActionNewProposal, 14},
	{ActionRemind, 14},
	{ActionClosing, 7},
}

// OffsetDays 依動作標籤決定跟進間隔
//
// 返回 false 表示不需要跟進（完了）。
func OffsetDays(action string) (int, bool) {
	for _, o := range actionOffsets {
		if strings.Contains(action, o.keyword) {
			return o.days, true
		}
	}
	if strings.Contains(action, ActionDone) {
		return 0, false
	}
	return defaultOffsetDays, true
}

// unrankedPriority 詞彙以外的動作排在最後
const unrankedPriority = 999

// actionPriorities 通知排序用的優先度（數字小者優先）
var actionPriorities = []struct {
	keyword string
	rank    int
}{
	{ActionRecontact, 1},
	{ActionClosing, 2},
	{ActionFollowUp, 3},
	{ActionRemind, 4},
	{ActionNewProposal, 5},
	{ActionRepeatProposal, 6},
	{ActionInProgress, 7},
}

// ActionPriority 動作的通知優先度
//
// 先比對完整標籤，再以關鍵字包含比對（例如「フォローアップ（見積）」）。
func ActionPriority(action string) int {
	action = strings.TrimSpace(action)
	for _, p := range actionPriorities {
		if action == p.keyword {
			return p.rank
		}
	}
	for _, p := range actionPriorities {
		if strings.Contains(action, p.keyword) {
			return p.rank
		}
	}
	return unrankedPriority
}

// ActionKeyword 取得標籤中包含的詞彙（找不到則原樣返回）
func ActionKeyword(action string) string {
	for _, a := range Actions {
		if strings.Contains(action, a) {
			return a
		}
	}
	return action
}

// IsUnsetAction 未設定動作
func IsUnsetAction(action string) bool {
	action = strings.TrimSpace(action)
	return action == "" || action == "-" || action == ActionUnset
}
