package workbooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/config"
	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

// Accessor opens and persists workbook files. Every tool call performs a
// fresh load-mutate-save cycle; no workbook stays in memory across calls.
type Accessor struct{}

// NewAccessor constructs a stateless workbook accessor.
func NewAccessor() *Accessor {
	return &Accessor{}
}

// Open loads the workbook at path, or creates a new one containing a single
// default sheet when createIfMissing is set. Newly created workbooks are
// persisted immediately so the file exists even if the caller's operation
// later fails.
func (a *Accessor) Open(path string, createIfMissing bool) (*excelize.File, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, mcperr.Wrap(mcperr.CorruptWorkbook, err)
		}
		return f, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if !createIfMissing {
		return nil, mcperr.Newf(mcperr.WorkbookNotFound, "workbook not found: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("workbooks: create parent dirs: %w", err)
	}
	f := excelize.NewFile()
	if err := a.Save(f, path); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Save persists the workbook atomically: the container is written to a temp
// file in the target directory and renamed over the destination, so a crash
// mid-save never leaves a half-written workbook behind.
func (a *Accessor) Save(f *excelize.File, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sheetsmith-*.tmp")
	if err != nil {
		return mcperr.Wrap(mcperr.SaveFailed, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		return mcperr.Wrap(mcperr.SaveFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return mcperr.Wrap(mcperr.SaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return mcperr.Wrap(mcperr.SaveFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return mcperr.Wrap(mcperr.SaveFailed, err)
	}
	return nil
}

// WithLock runs fn while holding a per-path advisory file lock, serializing
// concurrent writers on the same workbook within and across processes. The
// lock file sits next to the workbook so it stays inside the workspace.
func (a *Accessor) WithLock(ctx context.Context, path string, fn func() error) error {
	lock := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, config.DefaultFileLockTimeout)
	defer cancel()

	ok, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return mcperr.Wrap(mcperr.BusyResource, err)
	}
	if !ok {
		return mcperr.New(mcperr.BusyResource, "workbook is locked by another writer")
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}
