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

// WriteCellInput defines parameters for writing one cell value.
type WriteCellInput struct {
	FilePath        string `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	SheetName       string `json:"sheet_name" validate:"required,sheetname" jsonschema_description:"Sheet name"`
	Cell            string `json:"cell" validate:"required,a1addr" jsonschema_description:"Target cell like B2"`
	Value           any    `json:"value" jsonschema_description:"Text, number, boolean, or null"`
	CreateIfMissing *bool  `json:"create_if_missing,omitempty" jsonschema_description:"Create missing workbook and sheet (default true)"`
}

// WriteCellOutput confirms a single-cell write.
type WriteCellOutput struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name"`
	Cell      string `json:"cell"`
	Value     any    `json:"value"`
	Saved     bool   `json:"saved"`
}

// WriteRangeInput defines parameters for writing a 2D block of values.
type WriteRangeInput struct {
	FilePath        string  `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	SheetName       string  `json:"sheet_name" validate:"required,sheetname" jsonschema_description:"Sheet name"`
	StartCell       string  `json:"start_cell" validate:"required,a1addr" jsonschema_description:"Anchor cell like A1"`
	Values          [][]any `json:"values" validate:"required" jsonschema_description:"Row-major 2D array of values"`
	CreateIfMissing *bool   `json:"create_if_missing,omitempty" jsonschema_description:"Create missing workbook and sheet (default true)"`
}

// WriteRangeOutput confirms a block write with counts.
type WriteRangeOutput struct {
	FilePath     string `json:"file_path"`
	SheetName    string `json:"sheet_name"`
	StartCell    string `json:"start_cell"`
	Rows         int    `json:"rows"`
	WrittenCells int    `json:"written_cells"`
	Saved        bool   `json:"saved"`
}

// StructuralInput defines parameters for row/column insert and delete tools.
type StructuralInput struct {
	FilePath        string `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	SheetName       string `json:"sheet_name" validate:"required,sheetname" jsonschema_description:"Sheet name"`
	Idx             int    `json:"idx" jsonschema_description:"1-based row or column index"`
	Amount          *int   `json:"amount,omitempty" jsonschema_description:"Contiguous rows or columns to affect (default 1)"`
	CreateIfMissing bool   `json:"create_if_missing,omitempty" jsonschema_description:"Create missing workbook and sheet"`
}

// StructuralOutput confirms a structural edit.
type StructuralOutput struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name"`
	Idx       int    `json:"idx"`
	Amount    int    `json:"amount"`
	Saved     bool   `json:"saved"`
}

// ClearRangeInput defines parameters for clearing values in a range.
type ClearRangeInput struct {
	FilePath        string `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	SheetName       string `json:"sheet_name" validate:"required,sheetname" jsonschema_description:"Sheet name"`
	CellRange       string `json:"cell_range" validate:"required,a1addr" jsonschema_description:"Cell or range like A1:C10"`
	CreateIfMissing bool   `json:"create_if_missing,omitempty" jsonschema_description:"Create missing workbook and sheet"`
}

// ClearRangeOutput confirms a clear with the count of cells that held values.
type ClearRangeOutput struct {
	FilePath     string `json:"file_path"`
	SheetName    string `json:"sheet_name"`
	CellRange    string `json:"cell_range"`
	ClearedCells int    `json:"cleared_cells"`
	Saved        bool   `json:"saved"`
}

func registerWriteTools(s *server.MCPServer, reg *Registry, deps Deps) {
	writeCell := mcp.NewTool(
		"write_cell",
		mcp.WithDescription("Write one value into a single cell (for example B2)."),
		mcp.WithInputSchema[WriteCellInput](),
		mcp.WithOutputSchema[WriteCellOutput](),
	)
	s.AddTool(writeCell, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in WriteCellInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		path, err := deps.Resolver.Resolve(in.FilePath)
		if err != nil {
			return mcperr.Result(err), nil
		}
		create := boolOr(in.CreateIfMissing, true)
		err = deps.withWorkbook(ctx, path, create, true, func(f *excelize.File) error {
			if err := sheets.Ensure(f, in.SheetName, create); err != nil {
				return err
			}
			return ops.WriteCell(f, in.SheetName, in.Cell, in.Value)
		})
		if err != nil {
			return mcperr.Result(err), nil
		}
		out := WriteCellOutput{FilePath: path, SheetName: in.SheetName, Cell: in.Cell, Value: in.Value, Saved: true}
		return mcp.NewToolResultStructured(out, fmt.Sprintf("wrote %s!%s", in.SheetName, in.Cell)), nil
	}))
	reg.Register(writeCell)

	writeRange := mcp.NewTool(
		"write_range",
		mcp.WithDescription("Write a 2D array to a sheet, row-major, starting at start_cell (for example A1)."),
		mcp.WithInputSchema[WriteRangeInput](),
		mcp.WithOutputSchema[WriteRangeOutput](),
	)
	s.AddTool(writeRange, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in WriteRangeInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		path, err := deps.Resolver.Resolve(in.FilePath)
		if err != nil {
			return mcperr.Result(err), nil
		}
		create := boolOr(in.CreateIfMissing, true)
		written := 0
		err = deps.withWorkbook(ctx, path, create, true, func(f *excelize.File) error {
			if err := sheets.Ensure(f, in.SheetName, create); err != nil {
				return err
			}
			written, err = ops.WriteRange(f, in.SheetName, in.StartCell, in.Values, deps.Limits.MaxCellsPerOp)
			return err
		})
		if err != nil {
			return mcperr.Result(err), nil
		}
		out := WriteRangeOutput{FilePath: path, SheetName: in.SheetName, StartCell: in.StartCell, Rows: len(in.Values), WrittenCells: written, Saved: true}
		return mcp.NewToolResultStructured(out, fmt.Sprintf("wrote %d cells from %s", written, in.StartCell)), nil
	}))
	reg.Register(writeRange)

	type structuralOp struct {
		name  string
		desc  string
		apply func(f *excelize.File, sheet string, idx, amount int) error
	}
	for _, op := range []structuralOp{
		{"insert_rows", "Insert rows before idx (1-based).", ops.InsertRows},
		{"delete_rows", "Delete rows from idx (1-based).", ops.DeleteRows},
		{"insert_columns", "Insert columns before idx (1-based).", ops.InsertColumns},
		{"delete_columns", "Delete columns from idx (1-based).", ops.DeleteColumns},
	} {
		apply := op.apply
		tool := mcp.NewTool(
			op.name,
			mcp.WithDescription(op.desc),
			mcp.WithInputSchema[StructuralInput](),
			mcp.WithOutputSchema[StructuralOutput](),
		)
		s.AddTool(tool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in StructuralInput) (*mcp.CallToolResult, error) {
			if msg := validation.ValidateStruct(in); msg != "" {
				return mcp.NewToolResultError(msg), nil
			}
			path, err := deps.Resolver.Resolve(in.FilePath)
			if err != nil {
				return mcperr.Result(err), nil
			}
			amount := intOr(in.Amount, 1)
			err = deps.withWorkbook(ctx, path, in.CreateIfMissing, true, func(f *excelize.File) error {
				if err := sheets.Ensure(f, in.SheetName, in.CreateIfMissing); err != nil {
					return err
				}
				return apply(f, in.SheetName, in.Idx, amount)
			})
			if err != nil {
				return mcperr.Result(err), nil
			}
			out := StructuralOutput{FilePath: path, SheetName: in.SheetName, Idx: in.Idx, Amount: amount, Saved: true}
			return mcp.NewToolResultStructured(out, fmt.Sprintf("idx=%d amount=%d", in.Idx, amount)), nil
		}))
		reg.Register(tool)
	}

	clearRange := mcp.NewTool(
		"clear_range",
		mcp.WithDescription("Clear values in a range like A1:C10, leaving formatting in place."),
		mcp.WithInputSchema[ClearRangeInput](),
		mcp.WithOutputSchema[ClearRangeOutput](),
	)
	s.AddTool(clearRange, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ClearRangeInput) (*mcp.CallToolResult, error) {
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
		cleared := 0
		err = deps.withWorkbook(ctx, path, in.CreateIfMissing, true, func(f *excelize.File) error {
			if err := sheets.Ensure(f, in.SheetName, in.CreateIfMissing); err != nil {
				return err
			}
			cleared, err = ops.ClearRange(f, in.SheetName, bounds, deps.Limits.MaxCellsPerOp)
			return err
		})
		if err != nil {
			return mcperr.Result(err), nil
		}
		out := ClearRangeOutput{FilePath: path, SheetName: in.SheetName, CellRange: in.CellRange, ClearedCells: cleared, Saved: true}
		return mcp.NewToolResultStructured(out, fmt.Sprintf("cleared %d cells in %s", cleared, in.CellRange)), nil
	}))
	reg.Register(clearRange)
}
