// Package auth_tools provides the MCP tools for OAuth authentication
// against the remote calendar providers: starting a login, exchanging
// an authorization code, checking status, and logging out.
package auth_tools
