// Package server provides the MCP server context, the REST transport
// shim, and the operational HTTP endpoints for the calendar-mcp
// application.
//
// # Key Components
//
// ServerContext bundles the shared dependencies: the in-memory event
// store, the OAuth credential vault, the ICS exporter, the command
// interpreter, and the dispatch registry. Both transports (stdio MCP
// and the REST shim) route tool calls through the same registry, so a
// tool behaves identically no matter how it was invoked.
//
// RESTServer exposes a single POST endpoint that accepts
// {"tool": ..., "input": {...}} and replies with {"result": ...}
// or {"error": ...}. It exists for callers that speak plain HTTP
// instead of MCP.
//
// HealthChecker provides /healthz and /readyz endpoints for Kubernetes
// probes. MetricsServer serves Prometheus metrics on a dedicated port,
// isolated from application traffic.
package server
