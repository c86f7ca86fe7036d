// Package common provides shared helpers for MCP tool implementations:
// instrumented handler wrappers and the bridge between MCP tools and
// the dispatch registry.
//
// Every tool is registered twice: as an operation in the dispatch
// registry (shared with the REST transport) and as an MCP tool whose
// handler delegates to that registry. RegistryToolHandler is that
// delegation, and InstrumentedToolHandler wraps any handler with
// metrics and structured logging.
package common
