package customer

import (
	"context"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

// ===========================
// EditCustomer / ToggleTag Use Case
// ===========================

// EditCustomerCommand 單欄位編輯命令
type EditCustomerCommand struct {
	Key   string
	Field string
	Value string
}

// EditCustomerUseCase 行內編輯 Use Case（交由自動保存寫檔）
type EditCustomerUseCase struct {
	session *EditSession
}

// NewEditCustomerUseCase 創建 Use Case 實例
func NewEditCustomerUseCase(session *EditSession) *EditCustomerUseCase {
	return &EditCustomerUseCase{session: session}
}

// Execute 執行編輯，返回修改後的記錄
//
// 錯誤處理：
// - ErrInvalidRecordKey / ErrRecordNotFound: 記錄不存在
// - ErrUnknownField / ErrReadOnlyField: 欄位無法編輯
func (uc *EditCustomerUseCase) Execute(ctx context.Context, cmd EditCustomerCommand) (*RecordDTO, error) {
	record, err := uc.session.Edit(ctx, cmd.Key, customer.Field(cmd.Field), cmd.Value)
	if err != nil {
		return nil, err
	}
	dto := FromRecord(record)
	return &dto, nil
}

// ToggleTagCommand 標記切換命令
type ToggleTagCommand struct {
	Key string
	Tag string
}

// ToggleTagUseCase 標記切換 Use Case
type ToggleTagUseCase struct {
	session *EditSession
}

// NewToggleTagUseCase 創建 Use Case 實例
func NewToggleTagUseCase(session *EditSession) *ToggleTagUseCase {
	return &ToggleTagUseCase{session: session}
}

// Execute 執行切換，返回修改後的記錄
func (uc *ToggleTagUseCase) Execute(ctx context.Context, cmd ToggleTagCommand) (*RecordDTO, error) {
	tag, err := customer.ParseTag(cmd.Tag)
	if err != nil {
		return nil, err
	}
	record, err := uc.session.ToggleTag(ctx, cmd.Key, tag)
	if err != nil {
		return nil, err
	}
	dto := FromRecord(record)
	return &dto, nil
}
