package provider_tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/eventcal/calendar-mcp/internal/instrumentation"
	"github.com/eventcal/calendar-mcp/internal/logging"
	"github.com/eventcal/calendar-mcp/internal/providers"
	"github.com/eventcal/calendar-mcp/internal/server"
	"github.com/eventcal/calendar-mcp/internal/tools/common"
)

// RegisterProviderTools registers the remote calendar tools with the MCP
// server and the dispatch registry.
func RegisterProviderTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createTool := mcp.NewTool("create_calendar_event",
		mcp.WithDescription("Create an event on a real calendar backend (Google, Microsoft, or a local .ics file)"),
		mcp.WithString("provider",
			mcp.Required(),
			mcp.Description("Calendar provider: 'google', 'microsoft' (or 'outlook'), or 'ics'"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Event date (YYYY-MM-DD)"),
		),
		mcp.WithString("description",
			mcp.Description("Optional event description"),
		),
		mcp.WithString("start_time",
			mcp.Description("Start time (HH:MM, default 09:00)"),
		),
		mcp.WithString("end_time",
			mcp.Description("End time (HH:MM, default 10:00)"),
		),
		mcp.WithString("timezone",
			mcp.Description("Time zone identifier (default UTC)"),
		),
	)
	common.RegisterRegistryTool(s, sc, createTool, []string{"provider", "title", "date"},
		func(ctx context.Context, args map[string]any) (any, error) {
			return handleCreate(ctx, sc, args)
		})

	exportTool := mcp.NewTool("export_ics",
		mcp.WithDescription("Export an event as an RFC 5545 .ics file without touching any remote calendar"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Event date (YYYY-MM-DD)"),
		),
		mcp.WithString("description",
			mcp.Description("Optional event description"),
		),
		mcp.WithString("start_time",
			mcp.Description("Start time (HH:MM, default 09:00)"),
		),
		mcp.WithString("end_time",
			mcp.Description("End time (HH:MM, default 10:00)"),
		),
		mcp.WithString("timezone",
			mcp.Description("Time zone identifier (default UTC)"),
		),
	)
	common.RegisterRegistryTool(s, sc, exportTool, []string{"title", "date"},
		func(ctx context.Context, args map[string]any) (any, error) {
			start := time.Now()
			res := sc.Exporter().Export(eventInput(args))
			recordResult(ctx, sc, res, "export", time.Since(start))
			return res.Message(), nil
		})

	return nil
}

// eventInput maps tool arguments onto a provider event.
func eventInput(args map[string]any) providers.EventInput {
	return providers.EventInput{
		Title:       common.StringArg(args, "title"),
		Date:        common.StringArg(args, "date"),
		Description: common.StringArg(args, "description"),
		StartTime:   common.StringArg(args, "start_time"),
		EndTime:     common.StringArg(args, "end_time"),
		TimeZone:    common.StringArg(args, "timezone"),
	}
}

// handleCreate routes the event to the requested backend. Provider
// failures come back as the result message, not an error; the agent
// relays them to the user verbatim.
func handleCreate(ctx context.Context, sc *server.ServerContext, args map[string]any) (string, error) {
	p, err := providers.ParseProvider(common.StringArg(args, "provider"))
	if err != nil {
		return "", err
	}

	in := eventInput(args)
	start := time.Now()
	var res providers.Result

	switch p {
	case providers.Google:
		ts, err := sc.Vault().GoogleTokenSource(ctx)
		if err != nil {
			return "", err
		}
		res = providers.CreateGoogleEvent(ctx, ts, in)

	case providers.Microsoft:
		tok, err := sc.Vault().MicrosoftToken(ctx)
		if err != nil {
			return "", err
		}
		res = providers.CreateMicrosoftEvent(ctx, nil, tok.AccessToken, in)

	default:
		res = sc.Exporter().Export(in)
	}

	recordResult(ctx, sc, res, "create", time.Since(start))
	return res.Message(), nil
}

// recordResult emits provider metrics and a log line for one backend call.
func recordResult(ctx context.Context, sc *server.ServerContext, res providers.Result, operation string, duration time.Duration) {
	status := instrumentation.StatusSuccess
	if !res.Success {
		status = instrumentation.StatusError
	}

	sc.Metrics().RecordProviderOperation(ctx, res.Provider.String(), operation, status, duration)
	if res.Provider == providers.LocalExport {
		sc.Metrics().RecordICSExport(ctx, status)
	}

	sc.Logger().Info("provider operation",
		logging.Provider(res.Provider.String()),
		logging.Operation(operation),
		logging.Date(res.Date),
		logging.Status(status))
}
