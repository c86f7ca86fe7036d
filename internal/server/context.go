package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/eventcal/calendar-mcp/internal/dispatch"
	"github.com/eventcal/calendar-mcp/internal/instrumentation"
	"github.com/eventcal/calendar-mcp/internal/interpreter"
	"github.com/eventcal/calendar-mcp/internal/providers"
	"github.com/eventcal/calendar-mcp/internal/store"
	"github.com/eventcal/calendar-mcp/internal/vault"
)

// ServerContext holds the shared state for the MCP server: the in-memory
// event store, the credential vault, the ICS exporter, the command
// interpreter, and the operation registry both transports dispatch
// through.
type ServerContext struct {
	ctx      context.Context
	cancel   context.CancelFunc
	store    *store.Store
	vault    *vault.Vault
	exporter *providers.Exporter
	interp   *interpreter.Interpreter
	registry *dispatch.Registry
	metrics  *instrumentation.Metrics
	logger   *slog.Logger
	mu       sync.RWMutex
	shutdown bool
}

// Options configures a ServerContext. Zero values get sensible defaults.
type Options struct {
	// Vault overrides the default credential vault location.
	Vault *vault.Vault

	// ExportDir overrides the ICS export directory.
	ExportDir string

	// Metrics is the instrumentation recorder; nil means no-op.
	Metrics *instrumentation.Metrics

	// Logger is the structured logger; nil means slog.Default().
	Logger *slog.Logger
}

// NewServerContext creates a new server context with all dependencies
// initialized.
func NewServerContext(ctx context.Context, opts Options) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	v := opts.Vault
	if v == nil {
		var err error
		v, err = vault.New()
		if err != nil {
			cancel()
			return nil, err
		}
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	v.SetMetrics(metrics)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		store:    store.New(),
		vault:    v,
		exporter: providers.NewExporter(opts.ExportDir),
		interp:   interpreter.New(),
		registry: dispatch.NewRegistry(),
		metrics:  metrics,
		logger:   logger,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Store returns the in-memory event store.
func (sc *ServerContext) Store() *store.Store {
	return sc.store
}

// Vault returns the credential vault.
func (sc *ServerContext) Vault() *vault.Vault {
	return sc.vault
}

// Exporter returns the ICS file exporter.
func (sc *ServerContext) Exporter() *providers.Exporter {
	return sc.exporter
}

// Interpreter returns the natural-language command interpreter.
func (sc *ServerContext) Interpreter() *interpreter.Interpreter {
	return sc.interp
}

// Registry returns the operation registry shared by both transports.
func (sc *ServerContext) Registry() *dispatch.Registry {
	return sc.registry
}

// Metrics returns the metrics recorder.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
