package shared

// TransactionContext 事務上下文介面
//
// 設計決策：可選事務參與模式（Optional Transaction Participation）
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行（事務傳播）
// - ctx == nil: 使用 auto-commit 模式（適用於單一讀操作）
//
// 目前只有通知派送紀錄（dispatch log）使用資料庫；
// 顧客資料本身存放在 Markdown 檔案，不經過事務。
//
// 範例：
//
//	txManager.InTransaction(func(ctx TransactionContext) error {
//	    return dispatchRepo.Save(ctx, dispatch)
//	})
//
//	history, _ := dispatchRepo.FindRecent(nil, 20) // auto-commit
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
