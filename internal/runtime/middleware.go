package runtime

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/sheetsmith/sheetsmith/pkg/mcperr"
)

// Middleware enforces runtime limits for tool calls using the Controller.
// It bounds global concurrency, applies an operation timeout to each call,
// and tags the call context with a request ID for log correlation.
type Middleware struct {
	ctrl *Controller
}

// NewMiddleware constructs a Middleware bound to the provided Controller.
func NewMiddleware(ctrl *Controller) *Middleware {
	return &Middleware{ctrl: ctrl}
}

// ToolMiddleware implements mcp-go's tool handler middleware interface.
// It acquires a request slot, applies a timeout, and guarantees release.
func (m *Middleware) ToolMiddleware(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		acquireCtx := ctx
		if m.ctrl.limits.AcquireRequestTimeout > 0 {
			var cancel context.CancelFunc
			acquireCtx, cancel = context.WithTimeout(ctx, m.ctrl.limits.AcquireRequestTimeout)
			defer cancel()
		}

		if err := m.ctrl.AcquireRequest(acquireCtx); err != nil {
			// Tool-level error so the client can self-correct and retry.
			return mcperr.NewResult(mcperr.BusyResource, ""), nil
		}
		defer m.ctrl.ReleaseRequest()

		// Tag the context logger with a per-call request ID.
		requestID := uuid.NewString()
		logger := zerolog.Ctx(ctx).With().Str("request_id", requestID).Str("tool", req.Params.Name).Logger()
		callCtx := logger.WithContext(ctx)

		cancel := func() {}
		if m.ctrl.limits.OperationTimeout > 0 {
			callCtx, cancel = context.WithTimeout(callCtx, m.ctrl.limits.OperationTimeout)
		}
		defer cancel()

		res, err := next(callCtx, req)

		if err == context.DeadlineExceeded || (callCtx.Err() == context.DeadlineExceeded && err == nil && res == nil) {
			return mcperr.NewResult(mcperr.Timeout, ""), nil
		}

		return res, err
	}
}
