package mcperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Code defines a canonical MCP error code used across tools.
type Code string

const (
	// Validation & Input
	Validation   Code = "VALIDATION"
	InvalidRange Code = "INVALID_RANGE"
	InvalidIndex Code = "INVALID_INDEX"
	InvalidColor Code = "INVALID_COLOR"

	// Workspace & Paths
	OutOfWorkspace       Code = "OUT_OF_WORKSPACE"
	UnsupportedExtension Code = "UNSUPPORTED_EXTENSION"
	PathIsDirectory      Code = "PATH_IS_DIRECTORY"

	// Workbooks
	WorkbookNotFound Code = "WORKBOOK_NOT_FOUND"
	CorruptWorkbook  Code = "CORRUPT_WORKBOOK"
	SaveFailed       Code = "SAVE_FAILED"

	// Sheets
	InvalidSheetName   Code = "INVALID_SHEET_NAME"
	SheetNotFound      Code = "SHEET_NOT_FOUND"
	SheetNameCollision Code = "SHEET_NAME_COLLISION"
	LastSheetViolation Code = "LAST_SHEET_VIOLATION"

	// Resource & Limits
	BusyResource  Code = "BUSY_RESOURCE"
	Timeout       Code = "TIMEOUT"
	LimitExceeded Code = "LIMIT_EXCEEDED"
)

// Entry documents a code's standard message, retry semantics, and next steps.
type Entry struct {
	Code      Code
	Message   string
	Retryable bool
	NextSteps []string
}

// catalog maps canonical codes to guidance. Messages can be overridden per error.
var catalog = map[Code]Entry{
	Validation:   {Code: Validation, Message: "invalid inputs", Retryable: true, NextSteps: []string{"Correct the inputs per schema and retry", "See examples in tool description"}},
	InvalidRange: {Code: InvalidRange, Message: "invalid cell range", Retryable: true, NextSteps: []string{"Use A1 or corner:corner form such as A1:C10"}},
	InvalidIndex: {Code: InvalidIndex, Message: "idx and amount must be >= 1", Retryable: true, NextSteps: []string{"Rows and columns are 1-based"}},
	InvalidColor: {Code: InvalidColor, Message: "fill_hex must be 6 hex characters", Retryable: true, NextSteps: []string{"Example: EAF2FF or #EAF2FF"}},

	OutOfWorkspace:       {Code: OutOfWorkspace, Message: "path is outside the configured workspace", Retryable: false, NextSteps: []string{"Use a path under the workspace root", "Check SHEETSMITH_WORKSPACE_ROOT"}},
	UnsupportedExtension: {Code: UnsupportedExtension, Message: "unsupported file extension", Retryable: false, NextSteps: []string{"Use a .xlsx or .xlsm file"}},
	PathIsDirectory:      {Code: PathIsDirectory, Message: "path points to a directory, not a file", Retryable: false, NextSteps: []string{"Provide the workbook file path, not its folder"}},

	WorkbookNotFound: {Code: WorkbookNotFound, Message: "workbook not found", Retryable: true, NextSteps: []string{"Verify the path or set create_if_missing=true on tools that support it"}},
	CorruptWorkbook:  {Code: CorruptWorkbook, Message: "workbook appears corrupt or unreadable", Retryable: false, NextSteps: []string{"Open in Excel and re-save or repair", "Provide a clean copy"}},
	SaveFailed:       {Code: SaveFailed, Message: "failed to persist workbook", Retryable: true, NextSteps: []string{"Check disk space and permissions, then retry"}},

	InvalidSheetName:   {Code: InvalidSheetName, Message: "sheet name must be 1-31 characters without []:*?/\\", Retryable: true, NextSteps: []string{"Shorten the name or remove forbidden characters"}},
	SheetNotFound:      {Code: SheetNotFound, Message: "sheet not found", Retryable: true, NextSteps: []string{"Call list_sheets to verify sheet names", "Check case and spacing"}},
	SheetNameCollision: {Code: SheetNameCollision, Message: "a sheet with that name already exists", Retryable: true, NextSteps: []string{"Pick a different new_name"}},
	LastSheetViolation: {Code: LastSheetViolation, Message: "a workbook must retain at least one sheet", Retryable: false, NextSteps: []string{"Create another sheet before deleting this one"}},

	BusyResource:  {Code: BusyResource, Message: "concurrent request limit reached", Retryable: true, NextSteps: []string{"Retry after a short delay"}},
	Timeout:       {Code: Timeout, Message: "operation exceeded configured time limit", Retryable: true, NextSteps: []string{"Narrow the range and retry"}},
	LimitExceeded: {Code: LimitExceeded, Message: "operation exceeded configured limits", Retryable: true, NextSteps: []string{"Narrow the range or split into batches"}},
}

// Error is the typed error carried between internal packages and the tool
// boundary. Message augments the catalog text; Err preserves the cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if ent, ok := catalog[e.Code]; ok {
		return fmt.Sprintf("%s: %s", e.Code, ent.Message)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a typed error for the given code with an optional message override.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a typed error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a typed error, keeping the catalog message.
func Wrap(code Code, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: err.Error(), Err: err}
}

// CodeOf extracts the canonical code from an error chain; unknown errors map
// to VALIDATION so clients always receive a catalogued code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Validation
}

// normalize builds a standard error string including next steps for MCP clients
// that surface only a message string. Format: "CODE: message" plus guidance tail.
func normalize(code Code, msg string) string {
	base := strings.TrimSpace(msg)
	e, ok := catalog[code]
	if !ok {
		if base == "" {
			return string(code)
		}
		return fmt.Sprintf("%s: %s", string(code), base)
	}
	if base == "" {
		base = e.Message
	}
	guidance := ""
	if len(e.NextSteps) > 0 {
		guidance = " | nextSteps: " + strings.Join(e.NextSteps, "; ")
	}
	return fmt.Sprintf("%s: %s%s", e.Code, base, guidance)
}

// Result converts any error into an MCP tool error result with catalog guidance.
func Result(err error) *mcp.CallToolResult {
	if err == nil {
		return mcp.NewToolResultError(normalize(Validation, ""))
	}
	var e *Error
	if errors.As(err, &e) {
		return mcp.NewToolResultError(normalize(e.Code, e.Message))
	}
	return mcp.NewToolResultError(normalize(Validation, err.Error()))
}

// NewResult returns an MCP error result for a given code and optional message override.
func NewResult(code Code, message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(normalize(code, message))
}
