package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/eventcal/calendar-mcp/internal/dispatch"
	"github.com/eventcal/calendar-mcp/internal/instrumentation"
	"github.com/eventcal/calendar-mcp/internal/logging"
	"github.com/eventcal/calendar-mcp/internal/server"
)

// ToolHandler is the mcp-go tool handler signature.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with metrics and
// structured logging.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, duration)

		sc.Logger().Debug("tool invocation",
			logging.Tool(toolName),
			logging.Status(status),
			logging.Err(err))

		return result, err
	}
}

// RegistryToolHandler returns a handler that delegates the MCP tool call
// to the named operation in the dispatch registry. Using the registry as
// the single execution path keeps the stdio and REST transports in sync.
//
// Registry errors become MCP error results, not protocol errors, so the
// agent sees them as tool output.
func RegistryToolHandler(operation string, sc *server.ServerContext) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := sc.Registry().Call(ctx, operation, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

// RegisterRegistryTool registers op in the dispatch registry and mounts
// the matching instrumented MCP tool on the server.
func RegisterRegistryTool(s ToolAdder, sc *server.ServerContext, tool mcp.Tool, required []string, h dispatch.Handler) {
	sc.Registry().Register(tool.Name, required, h)
	s.AddTool(tool, mcpserver.ToolHandlerFunc(InstrumentedToolHandler(tool.Name, sc, RegistryToolHandler(tool.Name, sc))))
}

// ToolAdder is the part of *mcpserver.MCPServer the helpers need.
type ToolAdder interface {
	AddTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc)
}
