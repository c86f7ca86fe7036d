// Package dispatch routes named operations to registered handlers.
//
// The registry backs both transports: the MCP server consults it through
// the tool handlers, and the REST shim calls it directly. Registration
// declares the required arguments up front so missing-argument checks
// happen in one place instead of in every handler.
package dispatch
