package vault

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/eventcal/calendar-mcp/internal/instrumentation"
)

const (
	googleCalendarScope = "https://www.googleapis.com/auth/calendar"
	googleProfileScope  = "https://www.googleapis.com/auth/userinfo.profile"

	// Out-of-band redirect: Google shows the authorization code to the
	// user, who pastes it into the oauth_exchange_code tool.
	googleRedirectOOB = "urn:ietf:wg:oauth:2.0:oob"
)

// googleConfig builds the OAuth client config from the environment.
func googleConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET", ErrMissingClientConfig)
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  googleRedirectOOB,
		Scopes:       []string{googleCalendarScope, googleProfileScope},
	}, nil
}

// GoogleAuthURL returns the URL the user must visit to authorize access.
// The resulting code is exchanged with ExchangeGoogleCode.
func (v *Vault) GoogleAuthURL() (string, error) {
	conf, err := googleConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// ExchangeGoogleCode exchanges an authorization code for tokens, persists
// them, and returns a welcome message with the user's given name when the
// profile can be fetched.
func (v *Vault) ExchangeGoogleCode(ctx context.Context, code string) (string, error) {
	conf, err := googleConfig()
	if err != nil {
		return "", err
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}

	if err := v.saveJSON(googleTokenFile, tok); err != nil {
		return "", err
	}

	// Profile lookup is best-effort; authentication already succeeded.
	name := v.googleGivenName(ctx, conf.TokenSource(ctx, tok))
	if name == "" {
		return "Authentication successful! You can now create Google Calendar events.", nil
	}
	return fmt.Sprintf("Welcome, %s! Authentication successful. You can now create Google Calendar events.", name), nil
}

// GoogleTokenSource returns a token source backed by the cached token.
// Refreshed tokens are persisted so subsequent runs skip the refresh.
func (v *Vault) GoogleTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	conf, err := googleConfig()
	if err != nil {
		return nil, err
	}

	tok, err := v.loadToken(googleTokenFile)
	if err != nil {
		return nil, fmt.Errorf("%w: not authenticated with google, run oauth_login first", ErrAuthExchangeFailed)
	}

	ts := conf.TokenSource(ctx, tok)
	fresh, err := ts.Token()
	if err != nil {
		v.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		return nil, fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}
	if fresh.AccessToken != tok.AccessToken {
		v.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)
		if err := v.saveJSON(googleTokenFile, fresh); err != nil {
			return nil, err
		}
	}

	return oauth2.ReuseTokenSource(fresh, ts), nil
}

// googleGivenName fetches the authenticated user's given name, or ""
// when the profile is unavailable.
func (v *Vault) googleGivenName(ctx context.Context, ts oauth2.TokenSource) string {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return ""
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil || info == nil {
		return ""
	}
	return info.GivenName
}
