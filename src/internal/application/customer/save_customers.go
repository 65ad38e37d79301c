package customer

import (
	"context"
	"fmt"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

// ===========================
// SaveCustomers Use Case
// ===========================

// SaveCustomersCommand 整表保存命令（整份取代，後寫者勝）
type SaveCustomersCommand struct {
	Records []RecordDTO
}

// SaveCustomersResult 保存結果
type SaveCustomersResult struct {
	Count int
}

// SaveCustomersUseCase 整表保存 Use Case
//
// 以請求內容取代工作副本後立即保存，不等待自動保存計時。
// 實行預定日以伺服器端規則重算，不採用請求中的值。
type SaveCustomersUseCase struct {
	session *EditSession
	calc    *customer.ScheduleCalculator
}

// NewSaveCustomersUseCase 創建 Use Case 實例
func NewSaveCustomersUseCase(session *EditSession, calc *customer.ScheduleCalculator) *SaveCustomersUseCase {
	return &SaveCustomersUseCase{session: session, calc: calc}
}

// Execute 執行保存
func (uc *SaveCustomersUseCase) Execute(ctx context.Context, cmd SaveCustomersCommand) (*SaveCustomersResult, error) {
	records := ToRecords(cmd.Records)
	uc.calc.RefreshAll(records)

	if err := uc.session.Replace(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to replace customers: %w", err)
	}
	if err := uc.session.Flush(ctx); err != nil {
		return nil, err
	}

	return &SaveCustomersResult{Count: len(records)}, nil
}
