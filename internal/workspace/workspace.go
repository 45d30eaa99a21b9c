package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sheetsmith/sheetsmith/config"
	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

// Resolver validates caller-supplied workbook paths against a workspace root.
// The root is recomputed on every call via the injected lookup so that
// configuration changes take effect without a restart.
type Resolver struct {
	rootLookup  func() (string, error)
	allowedExts map[string]struct{}
}

// NewResolver constructs a Resolver with an explicit root lookup. Pass nil to
// read the root from the environment (SHEETSMITH_WORKSPACE_ROOT, falling back
// to the process working directory).
func NewResolver(rootLookup func() (string, error)) *Resolver {
	if rootLookup == nil {
		rootLookup = envRootLookup
	}
	exts := make(map[string]struct{}, len(config.AllowedExtensions))
	for _, e := range config.AllowedExtensions {
		exts[e] = struct{}{}
	}
	return &Resolver{rootLookup: rootLookup, allowedExts: exts}
}

func envRootLookup() (string, error) {
	if root := strings.TrimSpace(os.Getenv(config.EnvWorkspaceRoot)); root != "" {
		return root, nil
	}
	return os.Getwd()
}

// Root returns the canonical workspace root: expanded, absolute, and
// symlink-resolved.
func (r *Resolver) Root() (string, error) {
	raw, err := r.rootLookup()
	if err != nil {
		return "", err
	}
	return canonicalize(raw)
}

// Resolve validates a candidate path and returns its canonical absolute form.
// Candidates must sit inside the workspace root (compared by resolved path
// segments, never by string prefix), carry a supported extension, and not be
// a directory. The file itself may not exist yet; symlinks are resolved
// through the nearest existing ancestor so creation targets are still checked.
func (r *Resolver) Resolve(path string) (string, error) {
	root, err := r.Root()
	if err != nil {
		return "", err
	}

	candidate, err := canonicalize(path)
	if err != nil {
		return "", err
	}

	if !contains(root, candidate) {
		return "", mcperr.Newf(mcperr.OutOfWorkspace, "file_path must be inside workspace: %s", root)
	}

	ext := strings.ToLower(filepath.Ext(candidate))
	if _, ok := r.allowedExts[ext]; !ok {
		return "", mcperr.Newf(mcperr.UnsupportedExtension, "only .xlsx and .xlsm files are supported, got %q", ext)
	}

	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return "", mcperr.New(mcperr.PathIsDirectory, "file_path must point to a file, not a directory")
	}

	return candidate, nil
}

// canonicalize expands ~, makes the path absolute, and resolves symlinks.
// When the path does not exist, symlinks are resolved for the deepest
// existing ancestor and the remaining segments are re-joined, so traversal
// checks still see the real filesystem location.
func canonicalize(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	// Walk up to the nearest existing ancestor, resolve it, and re-attach
	// the missing tail.
	dir := abs
	var tail []string
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		tail = append([]string{filepath.Base(dir)}, tail...)
		dir = parent
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{real}, tail...)...), nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
	}
	return abs, nil
}

// contains reports whether candidate equals root or is strictly nested under
// it. filepath.Rel yields a ".."-prefixed path when outside, which defeats
// partial-name collisions like /root2 against root /root.
func contains(root, candidate string) bool {
	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
