package markdown_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackyeh168/crm_dashboard/src/internal/domain/customer"
	"github.com/jackyeh168/crm_dashboard/src/internal/domain/shared"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/markdown"
	"github.com/jackyeh168/crm_dashboard/src/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var saveTime = time.Date(2025, 11, 17, 1, 2, 3, 456, time.UTC)

func newTestStore(t *testing.T, dir string, backupDir string) *markdown.FileStore {
	t.Helper()
	return markdown.NewFileStore(markdown.FileStoreConfig{
		CustomersPath: filepath.Join(dir, "public", "data", "customers.md"),
		DocumentPath:  filepath.Join(dir, "顧客管理データ.md"),
		BackupDir:     backupDir,
	}, shared.FixedClock{At: saveTime}, zaptest.NewLogger(t))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := newTestStore(t, t.TempDir(), "")

	records, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStore_SaveAll_WritesBothFilesAndBackup(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	store := newTestStore(t, dir, backupDir)
	ctx := context.Background()

	docPath := filepath.Join(dir, "顧客管理データ.md")
	require.NoError(t, os.WriteFile(docPath, []byte("# 顧客管理\n\n"+markdown.LegacyTableHeader+"\n\n## メモ\n本文\n"), 0o644))

	require.NoError(t, store.SaveAll(ctx, []customer.Record{{CustomerName: "旧"}}))

	// Act
	err := store.SaveAll(ctx, []customer.Record{{CustomerName: "佐藤", IsFavorite: true}})

	// Assert
	require.NoError(t, err)

	primary := readFile(t, filepath.Join(dir, "public", "data", "customers.md"))
	assert.Contains(t, primary, "| 佐藤 |")
	assert.NotContains(t, primary, "| 旧 |")

	backup := readFile(t, filepath.Join(backupDir, "customers-2025-11-17T01-02-03.md"))
	assert.Contains(t, backup, "| 旧 |", "備份為覆寫前的內容")

	doc := readFile(t, docPath)
	assert.Contains(t, doc, "# 顧客管理\n\n"+markdown.TableHeader)
	assert.Contains(t, doc, "| 佐藤 |")
	assert.Contains(t, doc, "\n\n## メモ\n本文\n")
	assert.NotContains(t, doc, markdown.LegacyTableHeader)

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "佐藤", records[0].CustomerName)
	assert.True(t, records[0].IsFavorite)
}

func TestFileStore_SaveAll_BackupFailureIsNotFatal(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := newTestStore(t, dir, filepath.Join(blocker, "backups"))
	ctx := context.Background()
	require.NoError(t, store.SaveAll(ctx, []customer.Record{{CustomerName: "旧"}}))
	before := testutil.ToFloat64(metrics.BackupFailuresTotal)

	// Act
	err := store.SaveAll(ctx, []customer.Record{{CustomerName: "佐藤"}})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(dir, "public", "data", "customers.md")), "| 佐藤 |")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.BackupFailuresTotal))
}

func TestFileStore_SaveAll_CreatesMissingDocument(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t, dir, "")

	err := store.SaveAll(context.Background(), []customer.Record{{CustomerName: "佐藤"}})

	require.NoError(t, err)
	doc := readFile(t, filepath.Join(dir, "顧客管理データ.md"))
	assert.Equal(t, markdown.RenderTable([]customer.Record{{CustomerName: "佐藤"}})+"\n", doc)
}

func TestFileStore_CanceledContext(t *testing.T) {
	store := newTestStore(t, t.TempDir(), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = store.SaveAll(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.Revision(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStore_Revision_TracksFileContent(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	store := newTestStore(t, dir, "")
	ctx := context.Background()
	customersPath := filepath.Join(dir, "public", "data", "customers.md")

	// Act & Assert：尚未建立檔案
	missing, err := store.Revision(ctx)
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.NoError(t, store.SaveAll(ctx, []customer.Record{{CustomerName: "佐藤"}, {CustomerName: "鈴木"}}))
	saved, err := store.Revision(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, saved)

	// 內容不變時識別值不變
	again, err := store.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, again)

	// 同長度的手動改寫也會改變識別值
	edited := markdown.RenderTable([]customer.Record{{CustomerName: "佐藤"}, {CustomerName: "高橋"}}) + "\n"
	require.NoError(t, os.WriteFile(customersPath, []byte(edited), 0o644))
	changed, err := store.Revision(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, saved, changed)
}
