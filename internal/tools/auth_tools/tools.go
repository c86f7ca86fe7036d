package auth_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/eventcal/calendar-mcp/internal/instrumentation"
	"github.com/eventcal/calendar-mcp/internal/providers"
	"github.com/eventcal/calendar-mcp/internal/server"
	"github.com/eventcal/calendar-mcp/internal/tools/common"
)

// RegisterAuthTools registers the OAuth tools with the MCP server and
// the dispatch registry.
func RegisterAuthTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	loginTool := mcp.NewTool("oauth_login",
		mcp.WithDescription("Start OAuth authentication with a calendar provider. "+
			"Google returns an authorization URL; complete it with oauth_exchange_code. "+
			"Microsoft uses the device flow; call oauth_login again after approving."),
		mcp.WithString("provider",
			mcp.Required(),
			mcp.Description("Calendar provider: 'google' or 'microsoft'"),
		),
	)
	common.RegisterRegistryTool(s, sc, loginTool, []string{"provider"},
		func(ctx context.Context, args map[string]any) (any, error) {
			return handleLogin(ctx, sc, common.StringArg(args, "provider"))
		})

	exchangeTool := mcp.NewTool("oauth_exchange_code",
		mcp.WithDescription("Complete Google OAuth by exchanging the authorization code shown after visiting the login URL"),
		mcp.WithString("provider",
			mcp.Required(),
			mcp.Description("Calendar provider the code belongs to (currently only 'google')"),
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("The authorization code"),
		),
	)
	common.RegisterRegistryTool(s, sc, exchangeTool, []string{"provider", "code"},
		func(ctx context.Context, args map[string]any) (any, error) {
			return handleExchangeCode(ctx, sc, common.StringArg(args, "provider"), common.StringArg(args, "code"))
		})

	statusTool := mcp.NewTool("check_auth_status",
		mcp.WithDescription("Check whether calendar providers have stored credentials"),
		mcp.WithString("provider",
			mcp.Description("Provider to check ('google', 'microsoft'), or 'all' (default)"),
		),
	)
	common.RegisterRegistryTool(s, sc, statusTool, nil,
		func(_ context.Context, args map[string]any) (any, error) {
			return handleStatus(sc, common.StringArg(args, "provider"))
		})

	logoutTool := mcp.NewTool("oauth_logout",
		mcp.WithDescription("Remove stored credentials for a calendar provider"),
		mcp.WithString("provider",
			mcp.Required(),
			mcp.Description("Calendar provider: 'google' or 'microsoft'"),
		),
	)
	common.RegisterRegistryTool(s, sc, logoutTool, []string{"provider"},
		func(_ context.Context, args map[string]any) (any, error) {
			return handleLogout(sc, common.StringArg(args, "provider"))
		})

	return nil
}

func handleLogin(ctx context.Context, sc *server.ServerContext, providerName string) (string, error) {
	p, err := providers.ParseProvider(providerName)
	if err != nil {
		return "", err
	}

	switch p {
	case providers.Google:
		url, err := sc.Vault().GoogleAuthURL()
		if err != nil {
			sc.Metrics().RecordOAuthAuth(ctx, p.String(), instrumentation.OAuthResultFailure)
			return "", err
		}
		return fmt.Sprintf(`To authorize Google Calendar access:

1. Visit this URL in your browser:
   %s

2. Sign in and grant calendar access
3. Copy the authorization code
4. Call oauth_exchange_code with provider="google" and the code

You only need to authorize once; tokens refresh automatically.`, url), nil

	case providers.Microsoft:
		msg, err := sc.Vault().MicrosoftLogin(ctx)
		if err != nil {
			sc.Metrics().RecordOAuthAuth(ctx, p.String(), instrumentation.OAuthResultFailure)
			return "", err
		}
		if strings.Contains(msg, "successful") {
			sc.Metrics().RecordOAuthAuth(ctx, p.String(), instrumentation.OAuthResultSuccess)
		}
		return msg, nil

	default:
		return "", fmt.Errorf("%w: %s requires no authentication", providers.ErrUnsupportedProvider, p)
	}
}

func handleExchangeCode(ctx context.Context, sc *server.ServerContext, providerName, code string) (string, error) {
	p, err := providers.ParseProvider(providerName)
	if err != nil {
		return "", err
	}
	if p != providers.Google {
		return "", fmt.Errorf("%w: code exchange applies to google only, %s uses the device flow", providers.ErrUnsupportedProvider, p)
	}

	msg, err := sc.Vault().ExchangeGoogleCode(ctx, code)
	if err != nil {
		sc.Metrics().RecordOAuthAuth(ctx, p.String(), instrumentation.OAuthResultFailure)
		return "", err
	}
	sc.Metrics().RecordOAuthAuth(ctx, p.String(), instrumentation.OAuthResultSuccess)
	return msg, nil
}

func handleStatus(sc *server.ServerContext, providerName string) (string, error) {
	if providerName == "" || strings.EqualFold(providerName, "all") {
		var sb strings.Builder
		sb.WriteString("Authentication status:\n")
		for _, p := range []providers.Provider{providers.Google, providers.Microsoft} {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", p, statusWord(sc.Vault().IsAuthenticated(p))))
		}
		sb.WriteString("- ics: no authentication required\n")
		return sb.String(), nil
	}

	p, err := providers.ParseProvider(providerName)
	if err != nil {
		return "", err
	}
	if p == providers.LocalExport {
		return "ics: no authentication required", nil
	}
	return fmt.Sprintf("%s: %s", p, statusWord(sc.Vault().IsAuthenticated(p))), nil
}

func handleLogout(sc *server.ServerContext, providerName string) (string, error) {
	p, err := providers.ParseProvider(providerName)
	if err != nil {
		return "", err
	}

	removed, err := sc.Vault().Logout(p)
	if err != nil {
		return "", err
	}
	if removed {
		return fmt.Sprintf("Logged out of %s.", p), nil
	}
	return fmt.Sprintf("No stored credentials for %s.", p), nil
}

func statusWord(authenticated bool) string {
	if authenticated {
		return "authenticated"
	}
	return "not authenticated"
}
