package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/sheetsmith/sheetsmith/config"
	"github.com/sheetsmith/sheetsmith/internal/registry"
	"github.com/sheetsmith/sheetsmith/internal/runtime"
	"github.com/sheetsmith/sheetsmith/internal/telemetry"
	"github.com/sheetsmith/sheetsmith/internal/workbooks"
	"github.com/sheetsmith/sheetsmith/internal/workspace"
	"github.com/sheetsmith/sheetsmith/pkg/version"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var useStdio bool
	flag.BoolVar(&useStdio, "stdio", false, "Run server over stdio transport")
	flag.Parse()

	// Optional .env for SHEETSMITH_* variables; absence is fine.
	_ = godotenv.Load()

	logger := zlog.With().Str("service", "sheetsmith-server").Logger()
	ctx := logger.WithContext(context.Background())

	resolver := workspace.NewResolver(nil)
	root, err := resolver.Root()
	if err != nil {
		logger.Error().Err(err).Msg("workspace: failed to resolve root")
		fmt.Fprintln(os.Stderr, "invalid workspace configuration; check SHEETSMITH_WORKSPACE_ROOT")
		os.Exit(1)
	}

	limits := runtime.NewLimits(config.DefaultMaxConcurrentRequests)
	runtimeController := runtime.NewController(limits)
	runtimeMW := runtime.NewMiddleware(runtimeController)

	toolRegistry := registry.New()
	readOnlyFilter := registry.NewReadOnlyToolFilterFromEnv()

	srv := server.NewMCPServer(
		"Sheetsmith Workbook Editing Server",
		version.Version(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithHooks(telemetry.BuildHooks(logger)),
		server.WithToolHandlerMiddleware(runtimeMW.ToolMiddleware),
		server.WithToolFilter(func(ctx context.Context, tools []mcp.Tool) []mcp.Tool { return readOnlyFilter.FilterTools(ctx, tools) }),
	)

	registry.RegisterEditTools(srv, toolRegistry, registry.Deps{
		Resolver: resolver,
		Books:    workbooks.NewAccessor(),
		Limits:   runtimeController.LimitsSnapshot(),
	})

	logger.Info().
		Ctx(ctx).
		Str("version", version.Version()).
		Str("workspace_root", root).
		Int("max_concurrent_requests", limits.MaxConcurrentRequests).
		Int("max_cells_per_op", limits.MaxCellsPerOp).
		Bool("stdio", useStdio).
		Msg("server bootstrap configured")

	if useStdio {
		if err := server.ServeStdio(srv); err != nil {
			// Use stderr for transport errors so clients don't misinterpret output
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// If no transport flags provided, print usage and exit non-zero
	fmt.Fprintln(os.Stderr, "no transport selected; use --stdio to run over stdio")
	os.Exit(2)
}
