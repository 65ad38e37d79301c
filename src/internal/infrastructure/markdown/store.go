package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// ===========================
// FileStore 顧客表檔案倉儲
// ===========================

// backupTimeLayout 備份檔名的時間戳（UTC）
const backupTimeLayout = "2006-01-02T15-04-05"

const filePerm = 0o644

// FileStore 以 Markdown 檔案作為顧客資料存放處
//
// 寫入為整檔覆寫（後寫者勝），不加鎖。
type FileStore struct {
	customersPath string // 主檔（只含表格）
	documentPath  string // 次要文件（表格嵌在其他內容中）
	backupDir     string
	clock         shared.Clock
	logger        *zap.Logger
}

// FileStoreConfig 檔案路徑設定
type FileStoreConfig struct {
	CustomersPath string
	DocumentPath  string
	BackupDir     string
}

// NewFileStore 建立 FileStore
func NewFileStore(cfg FileStoreConfig, clock shared.Clock, logger *zap.Logger) *FileStore {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{
		customersPath: cfg.CustomersPath,
		documentPath:  cfg.DocumentPath,
		backupDir:     cfg.BackupDir,
		clock:         clock,
		logger:        logger,
	}
}

// 確保 FileStore 實作 customer.Repository
var _ customer.Repository = (*FileStore)(nil)

// Load 讀取主檔；檔案不存在時返回空列表
func (s *FileStore) Load(ctx context.Context) ([]customer.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.customersPath)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("customer table not found, starting empty", zap.String("path", s.customersPath))
		return []customer.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read customer table: %w", err)
	}
	return ParseTable(string(data)), nil
}

// Revision 主檔內容的 SHA-256；檔案不存在時返回空字串
//
// 以內容而非修改時間判斷，同一秒內的連續手動編輯也能偵測到。
func (s *FileStore) Revision(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.customersPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read customer table: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// SaveAll 覆寫全部記錄
//
// 步驟：
//  1. 建立備份目錄並複製現有主檔（失敗只記 warn）
//  2. 寫入主檔
//  3. 讀取次要文件（不存在則視為空白），合併表格後寫回
func (s *FileStore) SaveAll(ctx context.Context, records []customer.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.backup()

	table := RenderTable(records)
	if err := writeFile(s.customersPath, table+"\n"); err != nil {
		return fmt.Errorf("failed to write customer table: %w", err)
	}

	if s.documentPath == "" {
		return nil
	}

	original, err := os.ReadFile(s.documentPath)
	if err != nil {
		s.logger.Warn("failed to read customer document, creating a new one",
			zap.String("path", s.documentPath),
			zap.Error(err),
		)
	}
	if err := writeFile(s.documentPath, MergeTable(string(original), table)); err != nil {
		return fmt.Errorf("failed to write customer document: %w", err)
	}
	return nil
}

// backup 複製現有主檔；任何失敗都不中斷儲存
func (s *FileStore) backup() {
	if s.backupDir == "" {
		return
	}
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		s.logger.Warn("failed to create backup directory", zap.String("dir", s.backupDir), zap.Error(err))
	}

	existing, err := os.ReadFile(s.customersPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			metrics.BackupFailuresTotal.Inc()
			s.logger.Warn("failed to read customer table for backup", zap.Error(err))
		}
		return
	}

	name := fmt.Sprintf("customers-%s.md", s.clock.Now().UTC().Format(backupTimeLayout))
	path := filepath.Join(s.backupDir, name)
	if err := os.WriteFile(path, existing, filePerm); err != nil {
		metrics.BackupFailuresTotal.Inc()
		s.logger.Warn("failed to write backup", zap.String("path", path), zap.Error(err))
		return
	}
	s.logger.Info("backup created", zap.String("path", path))
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), filePerm)
}
