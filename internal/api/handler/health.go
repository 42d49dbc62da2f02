package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /health (liveness) and GET /health/ready
// (readiness).
type HealthHandler struct {
	deps []Pinger
	log  zerolog.Logger
}

func NewHealthHandler(log zerolog.Logger, deps ...Pinger) *HealthHandler {
	return &HealthHandler{deps: deps, log: log.With().Str("component", "health").Logger()}
}

// Liveness returns 200 immediately; it only proves the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	OK           bool                        `json:"ok"`
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness pings every configured dependency.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps))
	healthy := true
	for _, d := range h.deps {
		if err := d.Ping(ctx); err != nil {
			h.log.Error().Err(err).Str("dependency", d.Name()).Msg("readiness check failed")
			deps[d.Name()] = dependencyStatus{Status: "unhealthy"}
			healthy = false
			continue
		}
		deps[d.Name()] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		OK:           healthy,
		Status:       status,
		Dependencies: deps,
	})
}
