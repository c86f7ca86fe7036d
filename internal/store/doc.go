// Package store provides the in-memory event store used by the calendar
// tools. Events live for the lifetime of the process only.
//
// The store is intentionally not guarded by a lock: the stdio MCP transport
// processes one request at a time, and the REST transport inherits the same
// single-flight assumption. Concurrent or multi-instance deployments get no
// isolation guarantee.
package store
