package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eventcal/calendar-mcp/internal/dispatch"
	"github.com/eventcal/calendar-mcp/internal/logging"
)

const (
	// RESTEndpoint is the single tool-invocation endpoint of the REST shim.
	RESTEndpoint = "/api/mcp"

	// DefaultRESTAddr is the default bind address for the REST transport.
	DefaultRESTAddr = ":8080"

	defaultRESTReadTimeout  = 10 * time.Second
	defaultRESTWriteTimeout = 30 * time.Second
	defaultRESTIdleTimeout  = 60 * time.Second
)

// restRequest is the JSON body accepted by the REST endpoint.
type restRequest struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

// restResponse is the JSON reply. Exactly one of Result or Error is set.
type restResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RESTServer exposes the dispatch registry over plain HTTP for callers
// that do not speak MCP. Every invocation goes through the same registry
// as the stdio transport, so behavior is identical on both.
type RESTServer struct {
	serverContext *ServerContext
	httpServer    *http.Server
	addr          string
}

// NewRESTServer creates a REST server bound to addr.
func NewRESTServer(sc *ServerContext, addr string) *RESTServer {
	if addr == "" {
		addr = DefaultRESTAddr
	}
	return &RESTServer{
		serverContext: sc,
		addr:          addr,
	}
}

// Addr returns the configured bind address.
func (s *RESTServer) Addr() string {
	return s.addr
}

// Handler returns the HTTP handler serving the REST endpoint plus the
// health probes. Exposed separately for tests.
func (s *RESTServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(RESTEndpoint, http.HandlerFunc(s.handleInvoke))

	health := NewHealthChecker(s.serverContext)
	health.RegisterHealthEndpoints(mux)

	return mux
}

// Start starts the REST server in a blocking manner.
// Call this in a goroutine if you need non-blocking operation.
func (s *RESTServer) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: defaultRESTReadTimeout,
		WriteTimeout:      defaultRESTWriteTimeout,
		IdleTimeout:       defaultRESTIdleTimeout,
	}

	slog.Info("starting REST server", "addr", s.addr, logging.Transport("rest"))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the REST server.
func (s *RESTServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down REST server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// handleInvoke decodes one tool invocation, runs it through the
// registry, and writes the normalized result.
func (s *RESTServer) handleInvoke(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// Permissive CORS so browser-based agent frontends can call the shim.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed, use POST", start)
		return
	}

	var req restRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid JSON body", start)
		return
	}
	if req.Tool == "" {
		s.writeError(w, r, http.StatusBadRequest, "missing tool name", start)
		return
	}

	logger := logging.WithTool(s.serverContext.Logger(), req.Tool)

	result, err := s.serverContext.Registry().Call(r.Context(), req.Tool, req.Input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dispatch.ErrUnknownOperation) || errors.Is(err, dispatch.ErrMissingArgument) {
			status = http.StatusBadRequest
		}
		logger.Warn("tool invocation failed",
			logging.Status(logging.StatusError),
			logging.Err(err))
		s.writeError(w, r, status, err.Error(), start)
		return
	}

	logger.Debug("tool invocation completed",
		logging.Status(logging.StatusSuccess))

	s.writeJSON(w, r, http.StatusOK, restResponse{Result: result}, start)
}

func (s *RESTServer) writeError(w http.ResponseWriter, r *http.Request, status int, msg string, start time.Time) {
	s.writeJSON(w, r, status, restResponse{Error: msg}, start)
}

func (s *RESTServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, body restResponse, start time.Time) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)

	s.serverContext.Metrics().RecordHTTPRequest(r.Context(), r.Method, RESTEndpoint, status, time.Since(start))
}
