package messaging

import (
	"context"
	"fmt"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/template"
)

// ===========================
// ComposeMessage Use Case
// ===========================

// ComposeMessageCommand 訊息產生命令
type ComposeMessageCommand struct {
	Key string
}

// RenderedMessage 套用範本後的訊息
type RenderedMessage struct {
	TemplateID string `json:"templateId"`
	Title      string `json:"title"`
	Text       string `json:"text"`
}

// ComposeMessageResult 訊息產生結果
//
// 找不到對應語氣的範本時，該欄位為 nil。
type ComposeMessageResult struct {
	CustomerName string           `json:"customerName"`
	NextAction   string           `json:"nextAction"`
	Greeting     string           `json:"greeting"`
	Formal       *RenderedMessage `json:"formal"`
	Casual       *RenderedMessage `json:"casual"`
}

// ComposeMessageUseCase 依顧客狀況產生正式／輕鬆兩種訊息
type ComposeMessageUseCase struct {
	reader    customer.Reader
	templates template.Repository
	profile   template.Profile
	calc      *customer.ScheduleCalculator
}

// NewComposeMessageUseCase 創建 Use Case 實例
func NewComposeMessageUseCase(
	reader customer.Reader,
	templates template.Repository,
	profile template.Profile,
	calc *customer.ScheduleCalculator,
) *ComposeMessageUseCase {
	return &ComposeMessageUseCase{
		reader:    reader,
		templates: templates,
		profile:   profile,
		calc:      calc,
	}
}

// Execute 執行訊息產生
//
// {{実行予定日}} 使用重新推算的日期，不使用檔案中儲存的值。
//
// 錯誤處理：
// - ErrInvalidRecordKey / ErrRecordNotFound: 記錄不存在
func (uc *ComposeMessageUseCase) Execute(ctx context.Context, cmd ComposeMessageCommand) (*ComposeMessageResult, error) {
	key, err := customer.RecordKeyFromString(cmd.Key)
	if err != nil {
		return nil, err
	}

	records, err := uc.reader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	var record *customer.Record
	for i := range records {
		if records[i].Key.Equals(key) {
			found := records[i]
			record = &found
			break
		}
	}
	if record == nil {
		return nil, customer.ErrRecordNotFound.WithContext("key", cmd.Key)
	}
	uc.calc.Refresh(record)

	defs, err := uc.templates.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	now := uc.calc.Now()
	replacements := template.Replacements(*record, uc.profile, now)
	pair := template.SelectPair(defs, *record)

	return &ComposeMessageResult{
		CustomerName: record.CustomerName,
		NextAction:   record.NextAction,
		Greeting:     replacements["挨拶文"],
		Formal:       render(pair.Formal, replacements),
		Casual:       render(pair.Casual, replacements),
	}, nil
}

func render(def *template.Definition, replacements map[string]string) *RenderedMessage {
	if def == nil {
		return nil
	}
	return &RenderedMessage{
		TemplateID: def.ID,
		Title:      def.Title,
		Text:       template.Render(def.Body, replacements),
	}
}

// ===========================
// ListTemplates Use Case
// ===========================

// ListTemplatesUseCase 範本一覽
type ListTemplatesUseCase struct {
	templates template.Repository
}

// NewListTemplatesUseCase 創建 Use Case 實例
func NewListTemplatesUseCase(templates template.Repository) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{templates: templates}
}

// Execute 讀取全部範本
func (uc *ListTemplatesUseCase) Execute(ctx context.Context) ([]template.Definition, error) {
	defs, err := uc.templates.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	return defs, nil
}
