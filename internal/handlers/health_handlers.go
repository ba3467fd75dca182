package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tienda/internal/caching"
	"tienda/internal/repositories"
)

// HealthHandlers handles health and readiness probes
type HealthHandlers struct {
	db       repositories.Database
	cacheSvc caching.CacheService
	version  string
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db repositories.Database, cacheSvc caching.CacheService, version string) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
		version:  version,
	}
}

// Health reports liveness only
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// Ready reports readiness of the database and cache dependencies. Cache
// failure degrades the response but does not fail it; the service works
// without Redis.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	status := http.StatusOK

	if err := h.db.QueryRow(ctx, "SELECT 1").Scan(new(int)); err != nil {
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if h.cacheSvc == nil {
		checks["cache"] = "disabled"
	} else if err := h.cacheSvc.Ping(ctx); err != nil {
		checks["cache"] = "degraded"
	}

	return c.JSON(status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}

type dependencyCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Detailed reports per-dependency status with latencies.
func (h *HealthHandlers) Detailed(c echo.Context) error {
	ctx := c.Request().Context()

	checks := map[string]dependencyCheck{}
	status := http.StatusOK

	start := time.Now()
	if err := h.db.QueryRow(ctx, "SELECT 1").Scan(new(int)); err != nil {
		checks["database"] = dependencyCheck{Status: "unavailable", Error: err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = dependencyCheck{Status: "ok", Latency: time.Since(start).String()}
	}

	if h.cacheSvc == nil {
		checks["cache"] = dependencyCheck{Status: "disabled"}
	} else {
		start = time.Now()
		if err := h.cacheSvc.Ping(ctx); err != nil {
			checks["cache"] = dependencyCheck{Status: "degraded", Error: err.Error()}
		} else {
			checks["cache"] = dependencyCheck{Status: "ok", Latency: time.Since(start).String()}
		}
	}

	return c.JSON(status, map[string]interface{}{
		"status":  http.StatusText(status),
		"version": h.version,
		"checks":  checks,
	})
}
