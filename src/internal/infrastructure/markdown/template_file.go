package markdown

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/template"
	"go.uber.org/zap"
)

var jsonBlockPattern = regexp.MustCompile("(?s)```json(.*?)```")

// ParseTemplates 解析範本文件中第一個 ```json 區塊
//
// 沒有區塊時返回空集合；JSON 格式錯誤或不是陣列時返回錯誤。
func ParseTemplates(text string) ([]template.Definition, error) {
	m := jsonBlockPattern.FindStringSubmatch(text)
	if m == nil {
		return []template.Definition{}, nil
	}

	var defs []template.Definition
	if err := json.Unmarshal([]byte(m[1]), &defs); err != nil {
		return nil, fmt.Errorf("failed to parse template JSON: %w", err)
	}
	if defs == nil {
		defs = []template.Definition{}
	}
	return defs, nil
}

// TemplateFile 從 Markdown 檔讀取範本（每次請求重新讀取）
type TemplateFile struct {
	path   string
	logger *zap.Logger
}

// NewTemplateFile 建立 TemplateFile
func NewTemplateFile(path string, logger *zap.Logger) *TemplateFile {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateFile{path: path, logger: logger}
}

var _ template.Repository = (*TemplateFile)(nil)

// Load 讀取範本；檔案不存在或格式錯誤時記 warn 並返回空集合
func (f *TemplateFile) Load(ctx context.Context) ([]template.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		f.logger.Warn("failed to read template file", zap.String("path", f.path), zap.Error(err))
		return []template.Definition{}, nil
	}

	defs, err := ParseTemplates(string(data))
	if err != nil {
		f.logger.Warn("invalid template file", zap.String("path", f.path), zap.Error(err))
		return []template.Definition{}, nil
	}
	return defs, nil
}
