package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// ReadinessTimeout bounds a single readiness probe
const ReadinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthChecker defines the interface for components that can report health
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the process is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz reports ready only when every named component passes its check
// @Summary Readiness check
// @Description Returns OK if storage is writable and the chat session is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		resp := HealthResponse{Status: HealthStatusOK, Checks: make(map[string]string, len(checkers))}
		status := http.StatusOK
		for name, c := range checkers {
			if err := c.CheckHealth(ctx); err != nil {
				slog.Error(LogMsgReadinessFailed, "component", name, "error", err)
				resp.Checks[name] = err.Error()
				resp.Status = HealthStatusUnavailable
				resp.Message = ErrMsgUnavailableError
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = HealthStatusOK
		}
		respondJSON(w, status, resp)
	}
}
