package registry

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/internal/runtime"
	"github.com/sheetsmith/sheetsmith/internal/workbooks"
	"github.com/sheetsmith/sheetsmith/internal/workspace"
)

// Deps bundles the collaborators every edit tool composes: path resolution,
// workbook load/save, and runtime guardrails.
type Deps struct {
	Resolver *workspace.Resolver
	Books    *workbooks.Accessor
	Limits   runtime.Limits
}

// RegisterEditTools wires the full workbook editing tool surface.
func RegisterEditTools(s *server.MCPServer, reg *Registry, deps Deps) {
	registerReadTools(s, reg, deps)
	registerWriteTools(s, reg, deps)
	registerSheetTools(s, reg, deps)
	registerFormatTools(s, reg, deps)
}

// withWorkbook runs fn over a freshly-loaded workbook. Mutating calls take
// the per-path advisory lock for the whole load-mutate-save window and
// persist before returning; read-only calls skip both.
func (d Deps) withWorkbook(ctx context.Context, path string, create, save bool, fn func(*excelize.File) error) error {
	run := func() error {
		f, err := d.Books.Open(path, create)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := fn(f); err != nil {
			return err
		}
		if save {
			return d.Books.Save(f, path)
		}
		return nil
	}
	if save {
		return d.Books.WithLock(ctx, path, run)
	}
	return run()
}

// boolOr dereferences an optional flag, defaulting when absent.
func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// intOr dereferences an optional count, defaulting when absent.
func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
