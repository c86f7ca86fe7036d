package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/eventcal/calendar-mcp/internal/instrumentation"
	"github.com/eventcal/calendar-mcp/internal/providers"
)

var (
	// ErrMissingClientConfig indicates the OAuth client identifiers for a
	// provider are not present in the environment.
	ErrMissingClientConfig = errors.New("missing OAuth client configuration")

	// ErrAuthExchangeFailed wraps any failure of the underlying OAuth
	// exchange; raw transport errors never reach the caller directly.
	ErrAuthExchangeFailed = errors.New("authentication exchange failed")
)

const (
	googleTokenFile     = "google_token.json"
	microsoftTokenFile  = "microsoft_token.json"
	microsoftDeviceFile = "microsoft_device.json"
)

// Vault stores per-provider credentials in a directory of JSON files.
type Vault struct {
	dir     string
	metrics *instrumentation.Metrics
}

// New creates a vault rooted at <user cache dir>/calendar-mcp.
func New() (*Vault, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate user cache directory: %w", err)
	}
	return NewAt(filepath.Join(cache, "calendar-mcp")), nil
}

// NewAt creates a vault rooted at dir. Used by tests.
func NewAt(dir string) *Vault {
	return &Vault{dir: dir, metrics: &instrumentation.Metrics{}}
}

// SetMetrics attaches a metrics recorder for token refresh outcomes.
// Passing nil restores the no-op default.
func (v *Vault) SetMetrics(m *instrumentation.Metrics) {
	if m == nil {
		m = &instrumentation.Metrics{}
	}
	v.metrics = m
}

// Dir returns the vault directory.
func (v *Vault) Dir() string {
	return v.dir
}

// tokenPath maps an OAuth-capable provider to its token file.
func (v *Vault) tokenPath(p providers.Provider) (string, error) {
	switch p {
	case providers.Google:
		return filepath.Join(v.dir, googleTokenFile), nil
	case providers.Microsoft:
		return filepath.Join(v.dir, microsoftTokenFile), nil
	default:
		return "", fmt.Errorf("%w: %s has no credentials", providers.ErrUnsupportedProvider, p)
	}
}

// IsAuthenticated reports whether a token file exists for the provider.
// It does not validate token freshness: a stale-but-present token still
// reports authenticated.
func (v *Vault) IsAuthenticated(p providers.Provider) bool {
	path, err := v.tokenPath(p)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Logout removes the stored credentials for the provider. The boolean
// reports whether anything was removed.
func (v *Vault) Logout(p providers.Provider) (bool, error) {
	path, err := v.tokenPath(p)
	if err != nil {
		return false, err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove token file: %w", err)
	}

	// Clean up any pending device authorization alongside the token.
	if p == providers.Microsoft {
		_ = os.Remove(filepath.Join(v.dir, microsoftDeviceFile))
	}

	return true, nil
}

// saveJSON writes val to a vault file with owner-only permissions.
func (v *Vault) saveJSON(filename string, val any) error {
	if err := os.MkdirAll(v.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(filepath.Join(v.dir, filename), data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// loadJSON reads a vault file into val.
func (v *Vault) loadJSON(filename string, val any) error {
	data, err := os.ReadFile(filepath.Join(v.dir, filename))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, val)
}

// loadToken reads a cached oauth2 token from a vault file.
func (v *Vault) loadToken(filename string) (*oauth2.Token, error) {
	var tok oauth2.Token
	if err := v.loadJSON(filename, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
