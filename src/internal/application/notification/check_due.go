package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/notification"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/metrics"
)

// ===========================
// CheckDue Use Case
// ===========================

// TestModeMessage 預覽模式的回應訊息
const TestModeMessage = "テストモード"

// previewStatus 預覽模式的指標標籤（不寫入派送紀錄）
const previewStatus = "preview"

// NoneDueMessage 沒有到期顧客（未送出）
const NoneDueMessage = "今日対応すべき顧客はありません。"

// CheckDueCommand 通知檢查命令
//
// 輸入：
// - TestMode: 只預覽，不送出也不寫紀錄
// - HorizonDays: 覆寫通知範圍（nil 使用設定值）
type CheckDueCommand struct {
	TestMode    bool
	HorizonDays *int
}

// DueCustomerDTO 到期顧客（預覽與回應用）
type DueCustomerDTO struct {
	CustomerName            string `json:"customerName"`
	NextAction              string `json:"nextAction"`
	ScheduledDate           string `json:"scheduledDate"`
	CalculatedScheduledDate string `json:"calculatedScheduledDate"`
	LastContactDate         string `json:"lastContactDate"`
	ContactURL              string `json:"contactUrl"`
}

// CheckDueResult 通知檢查結果
type CheckDueResult struct {
	Message        string
	CustomersCount int
	Customers      []DueCustomerDTO
	Status         notification.Status
	Sent           bool
}

// CheckDueUseCase 到期顧客通知 Use Case
//
// 職責：
// 1. 讀取顧客並篩選到期者（customer.SelectDue）
// 2. 預覽模式直接返回清單
// 3. 檢查通知管道設定後送出訊息（無到期顧客則不送出）
// 4. 在事務中寫入派送紀錄（失敗只記錄警告）
type CheckDueUseCase struct {
	reader       customer.Reader
	notifier     notification.Notifier
	dispatchRepo notification.DispatchRepository
	txManager    shared.TransactionManager
	calc         *customer.ScheduleCalculator
	username     string
	horizonDays  int
	logger       *zap.Logger
}

// CheckDueConfig 通知參數
type CheckDueConfig struct {
	Username    string
	HorizonDays int
}

// NewCheckDueUseCase 創建 Use Case 實例
func NewCheckDueUseCase(
	reader customer.Reader,
	notifier notification.Notifier,
	dispatchRepo notification.DispatchRepository,
	txManager shared.TransactionManager,
	calc *customer.ScheduleCalculator,
	cfg CheckDueConfig,
	logger *zap.Logger,
) *CheckDueUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Username == "" {
		cfg.Username = notification.DefaultUsername
	}
	return &CheckDueUseCase{
		reader:       reader,
		notifier:     notifier,
		dispatchRepo: dispatchRepo,
		txManager:    txManager,
		calc:         calc,
		username:     cfg.Username,
		horizonDays:  cfg.HorizonDays,
		logger:       logger,
	}
}

// Execute 執行通知檢查
//
// 錯誤處理：
// - ErrWebhookNotConfigured: 未設定通知管道（即使沒有到期顧客）
// - ErrWebhookRejected / 傳輸錯誤: 送出失敗，派送紀錄為 failed
func (uc *CheckDueUseCase) Execute(ctx context.Context, cmd CheckDueCommand) (*CheckDueResult, error) {
	records, err := uc.reader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	horizon := uc.horizonDays
	if cmd.HorizonDays != nil {
		horizon = *cmd.HorizonDays
	}
	due := customer.SelectDue(records, horizon, uc.calc)

	if cmd.TestMode {
		metrics.NotificationsTotal.WithLabelValues(previewStatus).Inc()
		return &CheckDueResult{
			Message:        TestModeMessage,
			CustomersCount: len(due),
			Customers:      toDueDTOs(due),
		}, nil
	}

	if err := uc.notifier.Ready(); err != nil {
		metrics.NotificationsTotal.WithLabelValues(string(notification.StatusFailed)).Inc()
		return nil, err
	}

	names := make([]string, len(due))
	for i, c := range due {
		names[i] = c.CustomerName
	}

	var sendErr error
	msg, ok := notification.BuildMessage(due, uc.username)
	if ok {
		sendErr = uc.notifier.Send(ctx, msg)
	}

	dispatch := notification.RecordDispatch(uc.notifier.Channel(), names, sendErr, uc.calc.Now())
	uc.recordDispatch(dispatch)
	metrics.NotificationsTotal.WithLabelValues(string(dispatch.Status())).Inc()

	if sendErr != nil {
		uc.logger.Error("Notification send failed",
			zap.String("channel", dispatch.Channel()),
			zap.Int("customers", len(due)),
			zap.Error(sendErr),
		)
		return nil, sendErr
	}

	uc.logger.Info("Notification check completed",
		zap.String("status", string(dispatch.Status())),
		zap.Int("customers", len(due)),
	)

	message := NoneDueMessage
	if ok {
		message = fmt.Sprintf("%d件の通知を送信しました", len(due))
	}

	return &CheckDueResult{
		Message:        message,
		CustomersCount: len(due),
		Customers:      toDueDTOs(due),
		Status:         dispatch.Status(),
		Sent:           ok,
	}, nil
}

// recordDispatch 派送紀錄失敗不影響通知結果
func (uc *CheckDueUseCase) recordDispatch(d *notification.Dispatch) {
	if uc.dispatchRepo == nil || uc.txManager == nil {
		return
	}
	err := uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return uc.dispatchRepo.Save(ctx, d)
	})
	if err != nil {
		uc.logger.Warn("Failed to record notification dispatch",
			zap.String("dispatch_id", d.ID().String()),
			zap.Error(err),
		)
	}
}

func toDueDTOs(due []customer.DueCustomer) []DueCustomerDTO {
	out := make([]DueCustomerDTO, len(due))
	for i, c := range due {
		out[i] = DueCustomerDTO{
			CustomerName:            c.CustomerName,
			NextAction:              c.NextAction,
			ScheduledDate:           c.ScheduledDate,
			CalculatedScheduledDate: c.EffectiveDate,
			LastContactDate:         c.LastContactDate,
			ContactURL:              c.ContactURL,
		}
	}
	return out
}

// ===========================
// ListDispatches Use Case
// ===========================

// DispatchDTO 派送紀錄
type DispatchDTO struct {
	ID            string    `json:"id"`
	Channel       string    `json:"channel"`
	Status        string    `json:"status"`
	CustomerCount int       `json:"customerCount"`
	CustomerNames []string  `json:"customerNames"`
	ErrorMessage  string    `json:"errorMessage,omitempty"`
	DispatchedAt  time.Time `json:"dispatchedAt"`
}

// ListDispatchesUseCase 派送紀錄查詢 Use Case
type ListDispatchesUseCase struct {
	dispatchRepo notification.DispatchRepository
}

// NewListDispatchesUseCase 創建 Use Case 實例
func NewListDispatchesUseCase(repo notification.DispatchRepository) *ListDispatchesUseCase {
	return &ListDispatchesUseCase{dispatchRepo: repo}
}

// Execute 取得最近的派送紀錄（limit <= 0 使用倉儲預設值）
func (uc *ListDispatchesUseCase) Execute(limit int) ([]DispatchDTO, error) {
	dispatches, err := uc.dispatchRepo.FindRecent(nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatches: %w", err)
	}

	out := make([]DispatchDTO, len(dispatches))
	for i, d := range dispatches {
		out[i] = DispatchDTO{
			ID:            d.ID().String(),
			Channel:       d.Channel(),
			Status:        string(d.Status()),
			CustomerCount: d.CustomerCount(),
			CustomerNames: d.CustomerNames(),
			ErrorMessage:  d.ErrorMessage(),
			DispatchedAt:  d.DispatchedAt(),
		}
	}
	return out, nil
}
