package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hesab/backend/internal/domain/system"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string) *SystemHandler {
	if version == "" {
		version = "dev"
	}
	return &SystemHandler{
		version:   version,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Hesab API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Hesab API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ConnectionRequest is the connection settings form
// @Description Database connection settings
type ConnectionRequest struct {
	IP     string `json:"ip" example:"192.168.1.10"`
	Port   string `json:"port" example:"5432"`
	Path   string `json:"path" example:"/data"`
	Engine string `json:"engine" example:"sql"`
}

// ConnectionValidationResponse lists every problem found in a connection form
// @Description Connection validation result
type ConnectionValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateConnection godoc
// @ID           validateConnection
// @Summary      Validate connection settings
// @Description  Collects every problem instead of stopping at the first
// @Tags         system
// @Accept       json
// @Produce      json
// @Param        request body ConnectionRequest true "Connection settings"
// @Success      200 {object} APIResponse[ConnectionValidationResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /system/connection/validate [post]
func (h *SystemHandler) ValidateConnection(c *gin.Context) {
	var req ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	errs := system.ValidateConnection(system.ConnectionInput{
		IP:     req.IP,
		Port:   req.Port,
		Path:   req.Path,
		Engine: system.Engine(req.Engine),
	})
	if errs == nil {
		errs = []string{}
	}
	h.Success(c, ConnectionValidationResponse{Valid: len(errs) == 0, Errors: errs})
}

// Pinger reports whether the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the unversioned liveness probe
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler. A nil db reports the database as unknown.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// HealthResponse is the body of GET /health. It is not enveloped.
type HealthResponse struct {
	Status   string    `json:"status" example:"ok"`
	Database string    `json:"database" example:"ok"`
	Time     time.Time `json:"time"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "unknown", Time: time.Now().UTC()}
	if h.db == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check database ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp.Database = "ok"
	c.JSON(http.StatusOK, resp)
}
