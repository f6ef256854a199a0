package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func systemRouter() http.Handler {
	h := NewSystemHandler("1.2.3")
	r := newTestRouter()
	r.GET("/system/info", h.GetSystemInfo)
	r.GET("/system/ping", h.Ping)
	r.POST("/system/connection/validate", h.ValidateConnection)
	return r
}

func TestNewSystemHandler_DefaultsVersion(t *testing.T) {
	h := NewSystemHandler("")
	assert.Equal(t, "dev", h.version)
	assert.False(t, h.startTime.IsZero())
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	w := perform(systemRouter(), http.MethodGet, "/system/info", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var info SystemInfoResponse
	decodeData(t, w, &info)
	assert.Equal(t, "Hesab API", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Uptime)
}

func TestSystemHandler_Ping(t *testing.T) {
	w := perform(systemRouter(), http.MethodGet, "/system/ping", nil)
	var pong PingResponse
	decodeData(t, w, &pong)
	assert.Equal(t, "pong", pong.Message)
	assert.NotEmpty(t, pong.Timestamp)
}

func TestSystemHandler_ValidateConnection(t *testing.T) {
	tests := []struct {
		name      string
		req       ConnectionRequest
		valid     bool
		errorsLen int
	}{
		{"valid sql", ConnectionRequest{IP: "192.168.1.10", Port: "5432", Engine: "sql"}, true, 0},
		{"valid mongo with path", ConnectionRequest{IP: "10.0.0.1", Port: "27017", Path: "/data", Engine: "mongo"}, true, 0},
		{"everything wrong", ConnectionRequest{IP: "300.1.1.1", Port: "http", Path: "/a", Engine: "redis"}, false, 4},
		{"bad port only", ConnectionRequest{IP: "127.0.0.1", Port: "70000", Engine: "sql"}, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(systemRouter(), http.MethodPost, "/system/connection/validate", tt.req)
			require.Equal(t, http.StatusOK, w.Code)

			var resp ConnectionValidationResponse
			decodeData(t, w, &resp)
			assert.Equal(t, tt.valid, resp.Valid)
			assert.Len(t, resp.Errors, tt.errorsLen)
			assert.NotNil(t, resp.Errors)
		})
	}
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantDB     string
	}{
		{"healthy", pingerFunc(func(context.Context) error { return nil }), http.StatusOK, "ok"},
		{"database down", pingerFunc(func(context.Context) error { return errors.New("closed") }), http.StatusServiceUnavailable, "unreachable"},
		{"no database", nil, http.StatusOK, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			r.GET("/health", NewHealthHandler(tt.db).Health)

			w := perform(r, http.MethodGet, "/health", nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantDB, resp.Database)
			assert.False(t, resp.Time.IsZero())
		})
	}
}
