package customer

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
)

// ===========================
// Mocks
// ===========================

// frozenNow 測試用的「現在」：2025/11/17 10:30（本地時間）
var frozenNow = time.Date(2025, 11, 17, 10, 30, 0, 0, time.Local)

func newCalculator() *customer.ScheduleCalculator {
	return customer.NewScheduleCalculator(shared.FixedClock{At: frozenNow})
}

// MockCustomerRepository 記憶體實作，記錄每次保存的快照
//
// Block 不為 nil 時，SaveAll 通知 Started 後等待 Block 關閉。
// FailNext > 0 時，接下來的 FailNext 次保存返回 FailError。
// version 在每次成功保存或外部改寫時遞增，作為 Revision。
type MockCustomerRepository struct {
	mu sync.Mutex

	Records []customer.Record
	Saves   [][]customer.Record

	LoadCallCount int
	SaveCallCount int

	ShouldFail bool
	FailNext   int
	FailError  error

	version int

	Started chan struct{}
	Block   chan struct{}
}

func NewMockCustomerRepository(records ...customer.Record) *MockCustomerRepository {
	return &MockCustomerRepository{Records: records}
}

func (m *MockCustomerRepository) Load(ctx context.Context) ([]customer.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCallCount++
	out := make([]customer.Record, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

func (m *MockCustomerRepository) SaveAll(ctx context.Context, records []customer.Record) error {
	m.mu.Lock()
	m.SaveCallCount++
	started, block := m.Started, m.Block
	m.mu.Unlock()

	if block != nil {
		started <- struct{}{}
		<-block
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShouldFail {
		return m.FailError
	}
	if m.FailNext > 0 {
		m.FailNext--
		return m.FailError
	}
	m.Saves = append(m.Saves, records)
	m.Records = records
	m.version++
	return nil
}

func (m *MockCustomerRepository) Revision(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strconv.Itoa(m.version), nil
}

// rewrite 模擬手動編輯檔案
func (m *MockCustomerRepository) rewrite(records ...customer.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = records
	m.version++
}

func (m *MockCustomerRepository) loadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LoadCallCount
}

func (m *MockCustomerRepository) saveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCallCount
}

func (m *MockCustomerRepository) savedSnapshots() [][]customer.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]customer.Record, len(m.Saves))
	copy(out, m.Saves)
	return out
}

func (m *MockCustomerRepository) setFailure(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldFail = fail
	m.FailError = err
}

// day 相對 frozenNow 的日期字串
func day(offset int) string {
	return customer.FormatDate(frozenNow.AddDate(0, 0, offset))
}

func newRecord(name, action, lastContact string) customer.Record {
	return customer.Record{
		Key:             customer.NewRecordKey(),
		CustomerName:    name,
		NextAction:      action,
		LastContactDate: lastContact,
	}
}
