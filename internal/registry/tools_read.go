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

// ListSheetsInput defines parameters for listing workbook sheets.
type ListSheetsInput struct {
	FilePath        string `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	CreateIfMissing bool   `json:"create_if_missing,omitempty" jsonschema_description:"Create an empty workbook when the file does not exist"`
}

// ListSheetsOutput reports the ordered sheet names of a workbook.
type ListSheetsOutput struct {
	FilePath      string   `json:"file_path"`
	Sheets        []string `json:"sheets"`
	WorkspaceRoot string   `json:"workspace_root"`
}

// ReadRangeInput defines parameters for reading a cell range.
type ReadRangeInput struct {
	FilePath        string `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	SheetName       string `json:"sheet_name" validate:"required,sheetname" jsonschema_description:"Sheet name"`
	CellRange       string `json:"cell_range" validate:"required,a1addr" jsonschema_description:"Cell or range like B2 or A1:C10"`
	CreateIfMissing bool   `json:"create_if_missing,omitempty" jsonschema_description:"Create missing workbook and sheet"`
}

// ReadRangeOutput carries range values in row-major order; empty cells are null.
type ReadRangeOutput struct {
	FilePath  string  `json:"file_path"`
	SheetName string  `json:"sheet_name"`
	CellRange string  `json:"cell_range"`
	Values    [][]any `json:"values"`
}

func registerReadTools(s *server.MCPServer, reg *Registry, deps Deps) {
	listSheets := mcp.NewTool(
		"list_sheets",
		mcp.WithDescription("List all sheet names in an Excel workbook."),
		mcp.WithInputSchema[ListSheetsInput](),
		mcp.WithOutputSchema[ListSheetsOutput](),
	)
	s.AddTool(listSheets, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ListSheetsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		path, err := deps.Resolver.Resolve(in.FilePath)
		if err != nil {
			return mcperr.Result(err), nil
		}
		root, err := deps.Resolver.Root()
		if err != nil {
			return mcperr.Result(err), nil
		}
		out := ListSheetsOutput{FilePath: path, WorkspaceRoot: root}
		err = deps.withWorkbook(ctx, path, in.CreateIfMissing, false, func(f *excelize.File) error {
			out.Sheets = f.GetSheetList()
			return nil
		})
		if err != nil {
			return mcperr.Result(err), nil
		}
		summary := fmt.Sprintf("sheets=%d", len(out.Sheets))
		return mcp.NewToolResultStructured(out, summary), nil
	}))
	reg.Register(listSheets)

	readRange := mcp.NewTool(
		"read_range",
		mcp.WithDescription("Read a range like A1:C10 and return values as a 2D array; empty cells are null."),
		mcp.WithInputSchema[ReadRangeInput](),
		mcp.WithOutputSchema[ReadRangeOutput](),
	)
	s.AddTool(readRange, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ReadRangeInput) (*mcp.CallToolResult, error) {
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
		out := ReadRangeOutput{FilePath: path, SheetName: in.SheetName, CellRange: in.CellRange}
		err = deps.withWorkbook(ctx, path, in.CreateIfMissing, false, func(f *excelize.File) error {
			if err := sheets.Ensure(f, in.SheetName, in.CreateIfMissing); err != nil {
				return err
			}
			values, err := ops.ReadRange(f, in.SheetName, bounds, deps.Limits.MaxCellsPerOp)
			if err != nil {
				return err
			}
			out.Values = values
			return nil
		})
		if err != nil {
			return mcperr.Result(err), nil
		}
		summary := fmt.Sprintf("range=%s rows=%d", in.CellRange, len(out.Values))
		return mcp.NewToolResultStructured(out, summary), nil
	}))
	reg.Register(readRange)
}
