package registry

import (
	"context"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sheetsmith/sheetsmith/config"
)

// mutatingTools names every tool that writes the workbook back to disk.
var mutatingTools = map[string]struct{}{
	"write_cell":     {},
	"write_range":    {},
	"insert_rows":    {},
	"delete_rows":    {},
	"insert_columns": {},
	"delete_columns": {},
	"rename_sheet":   {},
	"delete_sheet":   {},
	"clear_range":    {},
	"format_range":   {},
}

// ReadOnlyToolFilter hides mutating tools from discovery when the server is
// switched to read-only mode via SHEETSMITH_READ_ONLY.
type ReadOnlyToolFilter struct {
	readOnly bool
}

// NewReadOnlyToolFilterFromEnv constructs a filter using SHEETSMITH_READ_ONLY.
// Writes are enabled by default.
func NewReadOnlyToolFilterFromEnv() *ReadOnlyToolFilter {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(config.EnvReadOnly)))
	readOnly := v == "1" || v == "true" || v == "yes"
	return &ReadOnlyToolFilter{readOnly: readOnly}
}

// FilterTools implements server tool filtering semantics.
func (f *ReadOnlyToolFilter) FilterTools(ctx context.Context, tools []mcp.Tool) []mcp.Tool {
	if !f.readOnly {
		return tools
	}
	out := make([]mcp.Tool, 0, len(tools))
	for _, t := range tools {
		if _, mutating := mutatingTools[t.Name]; mutating {
			continue
		}
		out = append(out, t)
	}
	return out
}
