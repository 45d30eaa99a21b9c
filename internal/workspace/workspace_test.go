package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

func mustTempDir(t *testing.T) string {
	t.Helper()
	d := t.TempDir()
	// Ensure real path (EvalSymlinks on macOS can change /var -> /private/var)
	real, err := filepath.EvalSymlinks(d)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	return real
}

func fixedRoot(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

func codeOf(t *testing.T, err error) mcperr.Code {
	t.Helper()
	var e *mcperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *mcperr.Error, got %v", err)
	}
	return e.Code
}

func TestResolve_AllowsWithinRoot(t *testing.T) {
	root := mustTempDir(t)
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	fpath := filepath.Join(sub, "ok.xlsx")
	if err := os.WriteFile(fpath, []byte("test"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r := NewResolver(fixedRoot(root))
	got, err := r.Resolve(fpath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Fatalf("expected absolute path, got %q", got)
	}
}

func TestResolve_AllowsNotYetExistingFile(t *testing.T) {
	root := mustTempDir(t)
	r := NewResolver(fixedRoot(root))

	got, err := r.Resolve(filepath.Join(root, "new", "deep", "file.xlsx"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != filepath.Join(root, "new", "deep", "file.xlsx") {
		t.Fatalf("unexpected canonical path %q", got)
	}
}

func TestResolve_DeniesOutsideRoot(t *testing.T) {
	root := mustTempDir(t)
	outside := filepath.Join(mustTempDir(t), "escape.xlsx")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r := NewResolver(fixedRoot(root))
	_, err := r.Resolve(outside)
	if err == nil {
		t.Fatalf("expected error for outside path")
	}
	if codeOf(t, err) != mcperr.OutOfWorkspace {
		t.Fatalf("expected OUT_OF_WORKSPACE, got %v", err)
	}
}

func TestResolve_DeniesSiblingWithSharedPrefix(t *testing.T) {
	parent := mustTempDir(t)
	root := filepath.Join(parent, "ws")
	sibling := filepath.Join(parent, "ws2")
	for _, d := range []string{root, sibling} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	target := filepath.Join(sibling, "x.xlsx")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r := NewResolver(fixedRoot(root))
	_, err := r.Resolve(target)
	if err == nil {
		t.Fatalf("expected error for prefix-sibling path")
	}
	if codeOf(t, err) != mcperr.OutOfWorkspace {
		t.Fatalf("expected OUT_OF_WORKSPACE, got %v", err)
	}
}

func TestResolve_SymlinkEscapeDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test skipped on Windows")
	}
	root := mustTempDir(t)
	outsideDir := mustTempDir(t)
	target := filepath.Join(outsideDir, "target.xlsx")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	link := filepath.Join(root, "link.xlsx")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	r := NewResolver(fixedRoot(root))
	if _, err := r.Resolve(link); err == nil {
		t.Fatalf("expected error for symlink escape")
	}
}

func TestResolve_UnsupportedExtension(t *testing.T) {
	root := mustTempDir(t)
	r := NewResolver(fixedRoot(root))

	for _, name := range []string{"bad.txt", "bad.csv", "bad.xls", "noext"} {
		_, err := r.Resolve(filepath.Join(root, name))
		if err == nil {
			t.Fatalf("%s: expected unsupported extension error", name)
		}
		if codeOf(t, err) != mcperr.UnsupportedExtension {
			t.Fatalf("%s: expected UNSUPPORTED_EXTENSION, got %v", name, err)
		}
	}

	// Extension matching is case-insensitive.
	if _, err := r.Resolve(filepath.Join(root, "ok.XLSX")); err != nil {
		t.Fatalf("uppercase extension should pass: %v", err)
	}
}

func TestResolve_DirectoryRejected(t *testing.T) {
	root := mustTempDir(t)
	dir := filepath.Join(root, "folder.xlsx")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	r := NewResolver(fixedRoot(root))
	_, err := r.Resolve(dir)
	if err == nil {
		t.Fatalf("expected error for directory path")
	}
	if codeOf(t, err) != mcperr.PathIsDirectory {
		t.Fatalf("expected PATH_IS_DIRECTORY, got %v", err)
	}
}

func TestRoot_RecomputedPerCall(t *testing.T) {
	first := mustTempDir(t)
	second := mustTempDir(t)
	current := first
	r := NewResolver(func() (string, error) { return current, nil })

	if _, err := r.Resolve(filepath.Join(first, "a.xlsx")); err != nil {
		t.Fatalf("resolve in first root: %v", err)
	}
	current = second
	if _, err := r.Resolve(filepath.Join(first, "a.xlsx")); err == nil {
		t.Fatalf("expected denial after root moved")
	}
	if _, err := r.Resolve(filepath.Join(second, "a.xlsx")); err != nil {
		t.Fatalf("resolve in second root: %v", err)
	}
}
