// Package vault manages OAuth credentials for the remote calendar
// providers. Tokens are cached as JSON files under the user cache
// directory so re-authentication is not required on every process start.
//
// Google uses the authorization-code flow (the code is supplied by the
// user through a tool call); Microsoft uses the device-authorization
// flow. Both refresh silently through oauth2 token sources and persist
// refreshed tokens back to disk.
//
// IsAuthenticated is a presence check on the token file only; a stale
// but present token still reports authenticated. That is a documented
// limitation of the credential model, not a bug.
package vault
