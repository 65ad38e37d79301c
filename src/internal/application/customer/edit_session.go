package customer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/metrics"
)

// ===========================
// EditSession 編輯工作階段
// ===========================

// DefaultDebounce 自動保存的預設延遲
const DefaultDebounce = 2 * time.Second

// ErrSessionClosed 工作階段已關閉
var ErrSessionClosed = errors.New("edit session closed")

// SessionStatus 自動保存狀態
type SessionStatus struct {
	Records     int
	Dirty       bool
	Saving      bool
	LastSavedAt time.Time
	LastError   string
}

// EditSession 記憶體中的顧客工作副本
//
// 行為：
// - 每次編輯標記為未保存，並重新計時（debounce）
// - 計時到期時保存快照；保存中不計時，保存完成後若有新編輯再計時
// - 保存失敗保留編輯內容與錯誤；保存期間有新編輯時重新計時，否則等下一次編輯
// - Flush 立即保存；Close 保存剩餘編輯並停止計時
// - 沒有未保存編輯時，每次讀取都比對 Repository 的 Revision，檔案被外部修改就重新讀入
//
// EditSession 同時實作 customer.Reader，列表、訊息與通知都經由它讀取，
// 因此手動編輯檔案後的下一個請求就會看到新內容。
type EditSession struct {
	repo     customer.Repository
	calc     *customer.ScheduleCalculator
	debounce time.Duration
	logger   *zap.Logger

	// saveMu 序列化保存（計時器與 Flush 不會同時寫檔）
	saveMu sync.Mutex

	mu          sync.Mutex
	records     []customer.Record
	revision    string // 工作副本對應的檔案內容
	loaded      bool
	dirty       bool
	saving      bool
	closed      bool
	timer       *time.Timer
	lastErr     error
	lastSavedAt time.Time

	// editedDuringSave 目前這次保存期間是否又有編輯
	editedDuringSave bool
}

// NewEditSession 建構函數
func NewEditSession(
	repo customer.Repository,
	calc *customer.ScheduleCalculator,
	debounce time.Duration,
	logger *zap.Logger,
) *EditSession {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditSession{
		repo:     repo,
		calc:     calc,
		debounce: debounce,
		logger:   logger,
	}
}

// Load 返回工作副本（第一次呼叫或檔案被外部修改時從 Repository 讀入）
func (s *EditSession) Load(ctx context.Context) ([]customer.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return cloneRecords(s.records), nil
}

// Edit 修改單一文字欄位
//
// 修改 nextAction 或 lastContactDate 時重新推算實行預定日。
func (s *EditSession) Edit(ctx context.Context, key string, field customer.Field, value string) (customer.Record, error) {
	return s.mutate(ctx, key, func(r *customer.Record) error {
		affectsSchedule, err := r.SetField(field, value)
		if err != nil {
			return err
		}
		if affectsSchedule {
			s.calc.Refresh(r)
		}
		return nil
	})
}

// ToggleTag 反轉手動標記
func (s *EditSession) ToggleTag(ctx context.Context, key string, tag customer.Tag) (customer.Record, error) {
	return s.mutate(ctx, key, func(r *customer.Record) error {
		_, err := r.ToggleTag(tag)
		return err
	})
}

// Replace 以整份列表取代工作副本（整表保存用）
func (s *EditSession) Replace(ctx context.Context, records []customer.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.records = cloneRecords(records)
	s.loaded = true
	s.markDirtyLocked()
	return nil
}

// Flush 立即保存未保存的編輯
func (s *EditSession) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.stopTimerLocked()
	s.mu.Unlock()

	return s.persist(ctx)
}

// Close 保存剩餘編輯並停止自動保存
func (s *EditSession) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.stopTimerLocked()
	s.mu.Unlock()

	return s.persist(ctx)
}

// Status 目前的保存狀態
func (s *EditSession) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := SessionStatus{
		Records:     len(s.records),
		Dirty:       s.dirty,
		Saving:      s.saving,
		LastSavedAt: s.lastSavedAt,
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	return status
}

func (s *EditSession) mutate(ctx context.Context, key string, fn func(r *customer.Record) error) (customer.Record, error) {
	recordKey, err := customer.RecordKeyFromString(key)
	if err != nil {
		return customer.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return customer.Record{}, ErrSessionClosed
	}
	if err := s.ensureLoadedLocked(ctx); err != nil {
		return customer.Record{}, err
	}

	for i := range s.records {
		if !s.records[i].Key.Equals(recordKey) {
			continue
		}
		if err := fn(&s.records[i]); err != nil {
			return customer.Record{}, err
		}
		s.markDirtyLocked()
		return s.records[i], nil
	}
	return customer.Record{}, customer.ErrRecordNotFound.WithContext("key", key)
}

// ensureLoadedLocked 確保工作副本與檔案一致
//
// 有未保存編輯或保存中時保留工作副本（後寫者勝）。
// 重新讀入會分配新的 RecordKey，舊 key 之後會得到 not found。
func (s *EditSession) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded && (s.dirty || s.saving) {
		return nil
	}

	// 先取 Revision 再讀檔：兩者之間的外部修改會在下一次讀取時被偵測到
	revision, err := s.repo.Revision(ctx)
	if err != nil {
		return fmt.Errorf("failed to check customer table: %w", err)
	}
	if s.loaded && revision == s.revision {
		return nil
	}

	records, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	if s.loaded {
		s.logger.Info("Customer table changed on disk, reloaded", zap.Int("records", len(records)))
	}
	s.records = records
	s.revision = revision
	s.loaded = true
	return nil
}

// markDirtyLocked 標記未保存；保存中不計時（完成後由 persist 重新計時）
func (s *EditSession) markDirtyLocked() {
	s.dirty = true
	if s.saving {
		s.editedDuringSave = true
		return
	}
	if !s.closed {
		s.armLocked()
	}
}

func (s *EditSession) armLocked() {
	s.stopTimerLocked()
	s.timer = time.AfterFunc(s.debounce, func() {
		// 錯誤已記錄在 lastErr 與日誌中
		_ = s.persist(context.Background())
	})
}

func (s *EditSession) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *EditSession) persist(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := cloneRecords(s.records)
	s.dirty = false
	s.saving = true
	s.editedDuringSave = false
	s.mu.Unlock()

	err := s.repo.SaveAll(ctx, snapshot)

	// 記下自己寫出的內容，之後才不會被當成外部修改
	var revision string
	if err == nil {
		var revErr error
		if revision, revErr = s.repo.Revision(ctx); revErr != nil {
			s.logger.Warn("Failed to read customer table revision after save", zap.Error(revErr))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		s.dirty = true
		s.lastErr = err
		metrics.CustomerSavesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		s.logger.Error("Failed to save customers",
			zap.Int("records", len(snapshot)),
			zap.Error(err),
		)
		// 保存期間的編輯仍需要一次 debounce 週期
		if s.editedDuringSave && !s.closed {
			s.armLocked()
		}
		return fmt.Errorf("failed to save customers: %w", err)
	}

	s.revision = revision
	s.lastErr = nil
	s.lastSavedAt = s.calc.Now()
	metrics.CustomerSavesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.logger.Debug("Customers saved", zap.Int("records", len(snapshot)))

	// 保存期間又有編輯
	if s.dirty && !s.closed {
		s.armLocked()
	}
	return nil
}

func cloneRecords(records []customer.Record) []customer.Record {
	if records == nil {
		return []customer.Record{}
	}
	out := make([]customer.Record, len(records))
	copy(out, records)
	return out
}
