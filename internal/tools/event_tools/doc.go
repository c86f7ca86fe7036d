// Package event_tools provides the MCP tools for the in-memory event
// store: adding, listing, deleting and summarizing events, plus the
// handle_message tool that routes free-form natural language through
// the command interpreter.
package event_tools
