package template

import "context"

// Repository 範本來源
type Repository interface {
	// Load 讀取全部範本；來源不存在或格式錯誤時返回空集合
	Load(ctx context.Context) ([]Definition, error)
}
