package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, ctx context.Context) *Provider {
	t.Helper()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordHTTPRequest(ctx, "POST", "/api/mcp", 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "POST", "/api/mcp", 500, 50*time.Millisecond)
}

func TestMetrics_RecordProviderOperation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordProviderOperation(ctx, ProviderGoogle, "create", StatusSuccess, 200*time.Millisecond)
	metrics.RecordProviderOperation(ctx, ProviderMicrosoft, "create", StatusError, 500*time.Millisecond)
	metrics.RecordProviderOperation(ctx, ProviderICS, "export", StatusSuccess, 5*time.Millisecond)
}

func TestMetrics_RecordICSExport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordICSExport(ctx, StatusSuccess)
	metrics.RecordICSExport(ctx, StatusError)
}

func TestMetrics_RecordOAuthAuth(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordOAuthAuth(ctx, ProviderGoogle, OAuthResultSuccess)
	metrics.RecordOAuthAuth(ctx, ProviderMicrosoft, OAuthResultFailure)
	metrics.RecordOAuthTokenRefresh(ctx, OAuthResultExpired)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordToolInvocation(ctx, "add_event", StatusSuccess, 10*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "view_events", StatusError, 5*time.Millisecond)
}

func TestMetrics_RecordCommandParse(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	metrics := newTestProvider(t, ctx).Metrics()

	// Should not panic
	metrics.RecordCommandParse(ctx, "add")
	metrics.RecordCommandParse(ctx, "unknown")
}

func TestMetrics_Uninitialized(t *testing.T) {
	ctx := context.Background()

	// Zero-value metrics must be safe to call when instrumentation is disabled.
	m := &Metrics{}
	m.RecordHTTPRequest(ctx, "GET", "/healthz", 200, time.Millisecond)
	m.RecordProviderOperation(ctx, ProviderGoogle, "create", StatusSuccess, time.Millisecond)
	m.RecordICSExport(ctx, StatusSuccess)
	m.RecordOAuthAuth(ctx, ProviderGoogle, OAuthResultSuccess)
	m.RecordOAuthTokenRefresh(ctx, OAuthResultSuccess)
	m.RecordToolInvocation(ctx, "add_event", StatusSuccess, time.Millisecond)
	m.RecordCommandParse(ctx, "list")
}
