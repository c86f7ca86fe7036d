package event_tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/eventcal/calendar-mcp/internal/interpreter"
	"github.com/eventcal/calendar-mcp/internal/server"
	"github.com/eventcal/calendar-mcp/internal/store"
	"github.com/eventcal/calendar-mcp/internal/tools/common"
)

// helpText is returned for messages the interpreter cannot resolve.
const helpText = `I didn't understand that. Try one of:
- "add:Title|2026-01-15|Optional description"
- "add Team sync on 2026-01-15"
- "schedule Dentist tomorrow"
- "list events" or "what's on 2026-01-15"
- "delete:Title" or "cancel the event Title"
- "summarize my events"`

// RegisterEventTools registers the event store tools with the MCP server
// and the dispatch registry.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	addEventTool := mcp.NewTool("add_event",
		mcp.WithDescription("Add an event to the calendar"),
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
	)
	common.RegisterRegistryTool(s, sc, addEventTool, []string{"title", "date"},
		func(_ context.Context, args map[string]any) (any, error) {
			return handleAddEvent(sc, args)
		})

	viewEventsTool := mcp.NewTool("view_events",
		mcp.WithDescription("View all calendar events, sorted by date"),
		mcp.WithString("date",
			mcp.Description("Optional date filter (YYYY-MM-DD); lists only that day"),
		),
	)
	common.RegisterRegistryTool(s, sc, viewEventsTool, nil,
		func(_ context.Context, args map[string]any) (any, error) {
			if date := common.StringArg(args, "date"); date != "" {
				return sc.Store().ListByDate(date), nil
			}
			return sc.Store().List(), nil
		})

	deleteEventTool := mcp.NewTool("delete_event",
		mcp.WithDescription("Delete calendar events by title (case-insensitive, removes all matches)"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the event(s) to delete"),
		),
	)
	common.RegisterRegistryTool(s, sc, deleteEventTool, []string{"title"},
		func(_ context.Context, args map[string]any) (any, error) {
			msg, _ := sc.Store().Delete(common.StringArg(args, "title"))
			return msg, nil
		})

	summarizeEventsTool := mcp.NewTool("summarize_events",
		mcp.WithDescription("Summarize all upcoming calendar events"),
	)
	common.RegisterRegistryTool(s, sc, summarizeEventsTool, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return sc.Store().Summarize(), nil
		})

	handleMessageTool := mcp.NewTool("handle_message",
		mcp.WithDescription("Interpret a natural-language calendar request and execute it"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Free-form message, e.g. 'add Team sync on 2026-01-15' or 'list events today'"),
		),
	)
	common.RegisterRegistryTool(s, sc, handleMessageTool, []string{"message"},
		func(ctx context.Context, args map[string]any) (any, error) {
			return handleMessage(ctx, sc, common.StringArg(args, "message"))
		})

	return nil
}

// handleAddEvent stores an event. Invalid dates produce the fixed
// user-facing message rather than an error so the agent can relay it.
func handleAddEvent(sc *server.ServerContext, args map[string]any) (string, error) {
	title := common.StringArg(args, "title")
	date := common.StringArg(args, "date")
	description := common.StringArg(args, "description")

	msg, err := sc.Store().Add(title, date, description)
	if err != nil {
		if errors.Is(err, store.ErrInvalidDate) {
			return store.InvalidDateMessage, nil
		}
		return "", err
	}
	return msg, nil
}

// handleMessage parses the message and executes the resolved command
// against the store. Parse failures come back as guidance text.
func handleMessage(ctx context.Context, sc *server.ServerContext, message string) (string, error) {
	cmd, err := sc.Interpreter().Parse(message)
	if err != nil {
		sc.Metrics().RecordCommandParse(ctx, interpreter.IntentUnknown.String())
		switch {
		case errors.Is(err, interpreter.ErrMalformedShorthand):
			return "Invalid format. Use: add:Title|YYYY-MM-DD|Optional description", nil
		case errors.Is(err, interpreter.ErrUnresolvedDate):
			return "I couldn't resolve that date. Use an explicit date like 2026-01-15, or 'today'/'tomorrow'.", nil
		}
		return "", err
	}

	sc.Metrics().RecordCommandParse(ctx, cmd.Intent.String())

	switch cmd.Intent {
	case interpreter.IntentAdd:
		msg, err := sc.Store().Add(cmd.Title, cmd.Date, cmd.Description)
		if errors.Is(err, store.ErrInvalidDate) {
			return store.InvalidDateMessage, nil
		}
		return msg, err
	case interpreter.IntentList:
		return sc.Store().List(), nil
	case interpreter.IntentListByDate:
		return sc.Store().ListByDate(cmd.Date), nil
	case interpreter.IntentDelete:
		msg, _ := sc.Store().Delete(cmd.Title)
		return msg, nil
	case interpreter.IntentSummarize:
		return sc.Store().Summarize(), nil
	default:
		return helpText, nil
	}
}
