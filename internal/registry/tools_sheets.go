package registry

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xuri/excelize/v2"

	"github.com/sheetsmith/sheetsmith/internal/sheets"
	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
	"github.com/sheetsmith/sheetsmith/pkg/validation"
)

// RenameSheetInput defines parameters for renaming a worksheet.
type RenameSheetInput struct {
	FilePath string `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	OldName  string `json:"old_name" validate:"required" jsonschema_description:"Current sheet name"`
	NewName  string `json:"new_name" validate:"required,sheetname" jsonschema_description:"New sheet name"`
}

// RenameSheetOutput confirms a rename.
type RenameSheetOutput struct {
	FilePath string `json:"file_path"`
	OldName  string `json:"old_name"`
	NewName  string `json:"new_name"`
	Saved    bool   `json:"saved"`
}

// DeleteSheetInput defines parameters for deleting a worksheet.
type DeleteSheetInput struct {
	FilePath  string `json:"file_path" validate:"required,xlsx_path" jsonschema_description:"Workbook path inside the workspace"`
	SheetName string `json:"sheet_name" validate:"required" jsonschema_description:"Sheet to delete"`
}

// DeleteSheetOutput confirms a deletion and lists what remains.
type DeleteSheetOutput struct {
	FilePath        string   `json:"file_path"`
	DeletedSheet    string   `json:"deleted_sheet"`
	RemainingSheets []string `json:"remaining_sheets"`
	Saved           bool     `json:"saved"`
}

func registerSheetTools(s *server.MCPServer, reg *Registry, deps Deps) {
	rename := mcp.NewTool(
		"rename_sheet",
		mcp.WithDescription("Rename a worksheet, preserving its position and content."),
		mcp.WithInputSchema[RenameSheetInput](),
		mcp.WithOutputSchema[RenameSheetOutput](),
	)
	s.AddTool(rename, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in RenameSheetInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		path, err := deps.Resolver.Resolve(in.FilePath)
		if err != nil {
			return mcperr.Result(err), nil
		}
		err = deps.withWorkbook(ctx, path, false, true, func(f *excelize.File) error {
			return sheets.Rename(f, in.OldName, in.NewName)
		})
		if err != nil {
			return mcperr.Result(err), nil
		}
		out := RenameSheetOutput{FilePath: path, OldName: in.OldName, NewName: in.NewName, Saved: true}
		return mcp.NewToolResultStructured(out, fmt.Sprintf("renamed %q to %q", in.OldName, in.NewName)), nil
	}))
	reg.Register(rename)

	del := mcp.NewTool(
		"delete_sheet",
		mcp.WithDescription("Delete a worksheet; the workbook must keep at least one sheet."),
		mcp.WithInputSchema[DeleteSheetInput](),
		mcp.WithOutputSchema[DeleteSheetOutput](),
	)
	s.AddTool(del, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in DeleteSheetInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		path, err := deps.Resolver.Resolve(in.FilePath)
		if err != nil {
			return mcperr.Result(err), nil
		}
		var remaining []string
		err = deps.withWorkbook(ctx, path, false, true, func(f *excelize.File) error {
			if err := sheets.Delete(f, in.SheetName); err != nil {
				return err
			}
			remaining = f.GetSheetList()
			return nil
		})
		if err != nil {
			return mcperr.Result(err), nil
		}
		out := DeleteSheetOutput{FilePath: path, DeletedSheet: in.SheetName, RemainingSheets: remaining, Saved: true}
		return mcp.NewToolResultStructured(out, fmt.Sprintf("deleted %q, %d sheets remain", in.SheetName, len(remaining))), nil
	}))
	reg.Register(del)
}
