package api

import (
	"context"
	"net/http"
	"time"

	"github.com/medcare/clinic-management/internal/storage"
)

type HealthHandler struct {
	backend storage.Backend
	env     string
	version string
}

func NewHealthHandler(backend storage.Backend, env, version string) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		env:     env,
		version: version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	})
}

// Readiness pings the snapshot backend. A down backend degrades durability
// but the in-memory store keeps serving, so it reports degraded, not error.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	status := "ok"

	if err := h.backend.Ping(ctx); err != nil {
		deps["storage"] = "down"
		status = "degraded"
	} else {
		deps["storage"] = "ok"
	}

	writeJSON(w, http.StatusOK, ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	})
}
