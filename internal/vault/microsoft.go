package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/eventcal/calendar-mcp/internal/instrumentation"
)

const (
	msGraphCalendarScope = "https://graph.microsoft.com/Calendars.ReadWrite"
	msOfflineAccessScope = "offline_access"

	// How long a single oauth_login call polls the token endpoint before
	// telling the user to approve and call again.
	msDevicePollWindow = 15 * time.Second
)

// microsoftConfig builds the OAuth client config from the environment.
// Device flow needs no client secret.
func microsoftConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("MICROSOFT_CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("%w: set MICROSOFT_CLIENT_ID", ErrMissingClientConfig)
	}

	tenant := os.Getenv("MICROSOFT_TENANT_ID")
	if tenant == "" {
		tenant = "common"
	}

	return &oauth2.Config{
		ClientID: clientID,
		Endpoint: microsoft.AzureADEndpoint(tenant),
		Scopes:   []string{msGraphCalendarScope, msOfflineAccessScope},
	}, nil
}

// MicrosoftToken returns a valid access token from the cache, refreshing
// and re-persisting it when expired. It never prompts for interaction.
func (v *Vault) MicrosoftToken(ctx context.Context) (*oauth2.Token, error) {
	conf, err := microsoftConfig()
	if err != nil {
		return nil, err
	}

	tok, err := v.loadToken(microsoftTokenFile)
	if err != nil {
		return nil, fmt.Errorf("%w: not authenticated with microsoft, run oauth_login first", ErrAuthExchangeFailed)
	}
	if tok.Valid() {
		return tok, nil
	}

	fresh, err := conf.TokenSource(ctx, tok).Token()
	if err != nil {
		v.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		return nil, fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}
	v.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)
	if err := v.saveJSON(microsoftTokenFile, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// MicrosoftLogin drives the device-authorization flow. The first call
// starts the flow and returns the verification URL and user code; the
// pending authorization is persisted so a later call can pick it up,
// poll for the token, and finish the login.
func (v *Vault) MicrosoftLogin(ctx context.Context) (string, error) {
	if tok, err := v.MicrosoftToken(ctx); err == nil && tok.Valid() {
		return "Already authenticated with Microsoft.", nil
	}

	conf, err := microsoftConfig()
	if err != nil {
		return "", err
	}

	// Resume a pending device authorization if one is still live.
	var pending oauth2.DeviceAuthResponse
	if err := v.loadJSON(microsoftDeviceFile, &pending); err == nil && time.Now().Before(pending.Expiry) {
		pollCtx, cancel := context.WithTimeout(ctx, msDevicePollWindow)
		defer cancel()

		tok, err := conf.DeviceAccessToken(pollCtx, &pending)
		if err != nil {
			if pollCtx.Err() != nil {
				return fmt.Sprintf("Authorization still pending. Visit %s, enter code %s, then call oauth_login again.",
					pending.VerificationURI, pending.UserCode), nil
			}
			_ = os.Remove(filepath.Join(v.dir, microsoftDeviceFile))
			return "", fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
		}

		if err := v.saveJSON(microsoftTokenFile, tok); err != nil {
			return "", err
		}
		_ = os.Remove(filepath.Join(v.dir, microsoftDeviceFile))
		return "Authentication successful! You can now create Outlook calendar events.", nil
	}

	da, err := conf.DeviceAuth(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthExchangeFailed, err)
	}
	if err := v.saveJSON(microsoftDeviceFile, da); err != nil {
		return "", err
	}

	return fmt.Sprintf("To sign in, visit %s and enter the code %s. Then call oauth_login again to complete authentication.",
		da.VerificationURI, da.UserCode), nil
}
