package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getDetailedHealth(t *testing.T, handler http.Handler) (int, DetailedHealthResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp DetailedHealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestDetailedHealth_ReportsEventCount(t *testing.T) {
	srv := newTestRESTServer(t)
	handler := srv.Handler()

	code, resp := getDetailedHealth(t, handler)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, healthStatusOK, resp.Status)
	assert.Equal(t, 0, resp.Events)
	assert.NotEmpty(t, resp.Uptime)

	_, err := srv.serverContext.Store().Add("Standup", "2026-01-15", "")
	require.NoError(t, err)
	_, err = srv.serverContext.Store().Add("Launch", "2026-05-04", "Rocket day")
	require.NoError(t, err)

	_, resp = getDetailedHealth(t, handler)
	assert.Equal(t, 2, resp.Events)
}

func TestDetailedHealth_NoServerContext(t *testing.T) {
	h := NewHealthChecker(nil)

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDetailedHealth_NotReady(t *testing.T) {
	h := NewHealthChecker(nil)
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
