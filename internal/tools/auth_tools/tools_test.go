package auth_tools

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcal/calendar-mcp/internal/dispatch"
	"github.com/eventcal/calendar-mcp/internal/server"
	"github.com/eventcal/calendar-mcp/internal/vault"
)

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), server.Options{
		Vault:     vault.NewAt(t.TempDir()),
		ExportDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	s := mcpserver.NewMCPServer("test", "0.0.0")
	require.NoError(t, RegisterAuthTools(s, sc))
	return sc
}

func TestOAuthLogin_Google(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret-456")
	sc := newTestContext(t)

	out, err := sc.Registry().Call(context.Background(), "oauth_login", map[string]any{"provider": "google"})
	require.NoError(t, err)
	assert.Contains(t, out, "https://accounts.google.com")
	assert.Contains(t, out, "oauth_exchange_code")
}

func TestOAuthLogin_MissingClientConfig(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	sc := newTestContext(t)

	_, err := sc.Registry().Call(context.Background(), "oauth_login", map[string]any{"provider": "google"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
}

func TestOAuthLogin_UnsupportedProvider(t *testing.T) {
	sc := newTestContext(t)

	_, err := sc.Registry().Call(context.Background(), "oauth_login", map[string]any{"provider": "caldav"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestOAuthLogin_ICSNeedsNoAuth(t *testing.T) {
	sc := newTestContext(t)

	_, err := sc.Registry().Call(context.Background(), "oauth_login", map[string]any{"provider": "ics"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires no authentication")
}

func TestOAuthExchangeCode_WrongProvider(t *testing.T) {
	t.Setenv("MICROSOFT_CLIENT_ID", "client-123")
	sc := newTestContext(t)

	_, err := sc.Registry().Call(context.Background(), "oauth_exchange_code",
		map[string]any{"provider": "microsoft", "code": "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device flow")
}

func TestOAuthExchangeCode_MissingCode(t *testing.T) {
	sc := newTestContext(t)

	_, err := sc.Registry().Call(context.Background(), "oauth_exchange_code",
		map[string]any{"provider": "google"})
	assert.ErrorIs(t, err, dispatch.ErrMissingArgument)
}

func TestCheckAuthStatus_All(t *testing.T) {
	sc := newTestContext(t)

	out, err := sc.Registry().Call(context.Background(), "check_auth_status", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "google: not authenticated")
	assert.Contains(t, out, "microsoft: not authenticated")
	assert.Contains(t, out, "ics: no authentication required")
}

func TestCheckAuthStatus_SingleProvider(t *testing.T) {
	sc := newTestContext(t)

	out, err := sc.Registry().Call(context.Background(), "check_auth_status", map[string]any{"provider": "google"})
	require.NoError(t, err)
	assert.Equal(t, "google: not authenticated", out)
}

func TestOAuthLogout(t *testing.T) {
	sc := newTestContext(t)

	out, err := sc.Registry().Call(context.Background(), "oauth_logout", map[string]any{"provider": "google"})
	require.NoError(t, err)
	assert.Equal(t, "No stored credentials for google.", out)
}
