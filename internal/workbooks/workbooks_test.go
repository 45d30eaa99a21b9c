package workbooks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

func TestOpen_MissingWithoutCreate(t *testing.T) {
	a := NewAccessor()
	_, err := a.Open(filepath.Join(t.TempDir(), "missing.xlsx"), false)
	require.Error(t, err)
	require.Equal(t, mcperr.WorkbookNotFound, mcperr.CodeOf(err))
}

func TestOpen_CreatePersistsImmediately(t *testing.T) {
	a := NewAccessor()
	path := filepath.Join(t.TempDir(), "nested", "dir", "new.xlsx")

	f, err := a.Open(path, true)
	require.NoError(t, err)
	defer f.Close()

	// The file must exist on disk before any further mutation.
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	// A new workbook carries exactly one default sheet.
	require.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}

func TestOpen_CorruptWorkbook(t *testing.T) {
	a := NewAccessor()
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip container"), 0o644))

	_, err := a.Open(path, false)
	require.Error(t, err)
	require.Equal(t, mcperr.CorruptWorkbook, mcperr.CodeOf(err))
}

func TestSave_AtomicReplace(t *testing.T) {
	a := NewAccessor()
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")

	f, err := a.Open(path, true)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "hello"))
	require.NoError(t, a.Save(f, path))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "book.xlsx", entries[0].Name())

	// Saved content is readable and complete.
	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, err := reopened.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	require.Equal(t, "hello", v)
}

func TestWithLock_RunsFn(t *testing.T) {
	a := NewAccessor()
	path := filepath.Join(t.TempDir(), "locked.xlsx")

	ran := false
	err := a.WithLock(context.Background(), path, func() error {
		ran = true

		// The lock is held for the duration of fn.
		held := flockHeld(t, path + ".lock")
		require.True(t, held)
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)
}

// flockHeld reports whether the lock file exists while fn runs; the flock
// package creates it on first acquisition.
func flockHeld(t *testing.T, lockPath string) bool {
	t.Helper()
	_, err := os.Stat(lockPath)
	return err == nil
}
