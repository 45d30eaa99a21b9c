package registry

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/internal/ops"
	"github.com/sheetsmith/sheetsmith/internal/sheets"
	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
	"github.com/sheetsmith/sheetsmith/pkg/validation"
)

// FormatRangeInput defines parameters for applying a partial format patch.
// Absent attributes keep whatever each cell already has.
type FormatRangeInput struct {
	FilePath        string  `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	SheetName       string  `json:"sheet_name" validate:"required,sheetname" jsonschema_description:"Sheet name"`
	CellRange       string  `json:"cell_range" validate:"required,a1addr" jsonschema_description:"Cell or range like A1:C10"`
	Bold            *bool   `json:"bold,omitempty" jsonschema_description:"Bold font"`
	WrapText        *bool   `json:"wrap_text,omitempty" jsonschema_description:"Wrap text in cells"`
	Horizontal      *string `json:"horizontal,omitempty" jsonschema_description:"Horizontal alignment (left, center, right)"`
	Vertical        *string `json:"vertical,omitempty" jsonschema_description:"Vertical alignment (top, center, bottom)"`
	NumberFormat    *string `json:"number_format,omitempty" jsonschema_description:"Number display format, e.g. 0.00"`
	FillHex         *string `json:"fill_hex,omitempty" validate:"omitempty,fillhex" jsonschema_description:"Solid fill color as 6 hex digits, e.g. EAF2FF"`
	CreateIfMissing bool    `json:"create_if_missing,omitempty" jsonschema_description:"Create missing workbook and sheet"`
}

// FormatRangeOutput confirms a format pass over a range.
type FormatRangeOutput struct {
	FilePath     string `json:"file_path"`
	SheetName    string `json:"sheet_name"`
	CellRange    string `json:"cell_range"`
	UpdatedCells int    `json:"updated_cells"`
	Saved        bool   `json:"saved"`
}

func registerFormatTools(s *server.MCPServer, reg *Registry, deps Deps) {
	format := mcp.NewTool(
		"format_range",
		mcp.WithDescription("Format cells in a range; only the attributes provided are changed. fill_hex example: 'EAF2FF'."),
		mcp.WithInputSchema[FormatRangeInput](),
		mcp.WithOutputSchema[FormatRangeOutput](),
	)
	s.AddTool(format, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in FormatRangeInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		path, err := deps.Resolver.Resolve(in.FilePath)
		if err != nil {
			return mcperr.Result(err), nil
		}
		bounds, err := ops.ParseRange(in.CellRange)
		if err != nil {
			return mcperr.Result(err), nil
		}
		patch := ops.FormatPatch{
			Bold:         in.Bold,
			WrapText:     in.WrapText,
			Horizontal:   in.Horizontal,
			Vertical:     in.Vertical,
			NumberFormat: in.NumberFormat,
			FillHex:      in.FillHex,
		}
		updated := 0
		err = deps.withWorkbook(ctx, path, in.CreateIfMissing, true, func(f *excelize.File) error {
			if err := sheets.Ensure(f, in.SheetName, in.CreateIfMissing); err != nil {
				return err
			}
			updated, err = ops.FormatRange(f, in.SheetName, bounds, patch, deps.Limits.MaxCellsPerOp)
			return err
		})
		if err != nil {
			return mcperr.Result(err), nil
		}
		out := FormatRangeOutput{FilePath: path, SheetName: in.SheetName, CellRange: in.CellRange, UpdatedCells: updated, Saved: true}
		return mcp.NewToolResultStructured(out, fmt.Sprintf("formatted %d cells in %s", updated, in.CellRange)), nil
	}))
	reg.Register(format)
}
