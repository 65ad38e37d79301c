package customer

import (
	"context"
	"fmt"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
)

// ===========================
// ListCustomers Use Case
// ===========================

// ListCustomersQuery 列表查詢
//
// Sort 為零值時使用 customer.DefaultSort()。
type ListCustomersQuery struct {
	Filter customer.Filter
	Sort   *customer.SortState
}

// ListCustomersResult 列表結果
//
// 輸出：
// - Records: 篩選、排序後的記錄
// - Total: 篩選前的記錄數
// - Stats: 儀表板統計（金額與件數以篩選後計算）
type ListCustomersResult struct {
	Records []RecordDTO
	Total   int
	Stats   customer.Stats
}

// ListCustomersUseCase 顧客列表 Use Case
type ListCustomersUseCase struct {
	reader customer.Reader
	calc   *customer.ScheduleCalculator
}

// NewListCustomersUseCase 創建 Use Case 實例
func NewListCustomersUseCase(reader customer.Reader, calc *customer.ScheduleCalculator) *ListCustomersUseCase {
	return &ListCustomersUseCase{reader: reader, calc: calc}
}

// Execute 執行查詢
func (uc *ListCustomersUseCase) Execute(ctx context.Context, query ListCustomersQuery) (*ListCustomersResult, error) {
	records, err := uc.reader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	sortState := customer.DefaultSort()
	if query.Sort != nil {
		sortState = *query.Sort
	}

	// 實行預定日為衍生欄位，顯示前以目前規則重算（只影響回傳的副本）
	uc.calc.RefreshAll(records)

	now := uc.calc.Now()
	filtered := customer.View(records, query.Filter, sortState, now)

	return &ListCustomersResult{
		Records: FromRecords(filtered),
		Total:   len(records),
		Stats:   customer.Summarize(filtered, records, now),
	}, nil
}
