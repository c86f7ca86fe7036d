// Package provider_tools provides the MCP tools that push events to
// real calendar backends: Google Calendar, Microsoft Outlook via the
// Graph API, and local iCalendar file export.
package provider_tools
