package config

import "time"

// Default limits and guardrails for the Sheetsmith MCP workbook server.
// These values are conservative and can be overridden by future configuration
// mechanisms (env, CLI, or files). They are referenced by internal/runtime.

const (
	// Environment variables
	EnvWorkspaceRoot = "SHEETSMITH_WORKSPACE_ROOT"
	EnvReadOnly      = "SHEETSMITH_READ_ONLY"

	// Concurrency
	DefaultMaxConcurrentRequests = 10

	// Cell bound per single operation
	DefaultMaxCellsPerOp = 10_000

	// Name excelize assigns to the sole sheet of a new workbook
	DefaultSheetName = "Sheet1"
)

const (
	// Timeouts
	DefaultOperationTimeout      = 30 * time.Second
	DefaultAcquireRequestTimeout = 2 * time.Second
	DefaultFileLockTimeout       = 5 * time.Second
)

// AllowedExtensions lists the workbook container extensions the workspace
// resolver accepts, lower-cased with leading dot.
var AllowedExtensions = []string{".xlsx", ".xlsm"}
