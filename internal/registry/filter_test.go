package registry

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

func toolNames(tools []mcp.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	return names
}

func TestReadOnlyFilter_PassthroughByDefault(t *testing.T) {
	f := &ReadOnlyToolFilter{readOnly: false}
	tools := []mcp.Tool{{Name: "list_sheets"}, {Name: "write_cell"}, {Name: "delete_sheet"}}
	require.Equal(t, tools, f.FilterTools(context.Background(), tools))
}

func TestReadOnlyFilter_HidesMutatingTools(t *testing.T) {
	f := &ReadOnlyToolFilter{readOnly: true}
	tools := []mcp.Tool{
		{Name: "list_sheets"},
		{Name: "read_range"},
		{Name: "write_cell"},
		{Name: "write_range"},
		{Name: "insert_rows"},
		{Name: "delete_rows"},
		{Name: "insert_columns"},
		{Name: "delete_columns"},
		{Name: "rename_sheet"},
		{Name: "delete_sheet"},
		{Name: "clear_range"},
		{Name: "format_range"},
	}
	got := f.FilterTools(context.Background(), tools)
	require.Equal(t, []string{"list_sheets", "read_range"}, toolNames(got))
}

func TestRegistry_StableSortedTools(t *testing.T) {
	reg := New()
	reg.Register(mcp.Tool{Name: "write_cell"})
	reg.Register(mcp.Tool{Name: "clear_range"})
	reg.Register(mcp.Tool{Name: "list_sheets"})

	tools, err := reg.Tools(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"clear_range", "list_sheets", "write_cell"}, toolNames(tools))

	_, ok := reg.Get("clear_range")
	require.True(t, ok)
	_, ok = reg.Get("nope")
	require.False(t, ok)
}
