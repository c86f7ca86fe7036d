// Package providers normalizes event creation across the supported
// calendar backends: Google Calendar, Microsoft Graph, and a local
// RFC 5545 (.ics) file export.
//
// All backends return the same Result shape. Remote failures (network
// errors, non-2xx responses, malformed payloads) are reported through
// Result.Success/Result.Err, never as Go errors, so a single failure
// policy applies regardless of backend.
package providers
