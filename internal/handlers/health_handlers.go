// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ReadinessChecker reports whether a dependency is ready to serve.
type ReadinessChecker interface {
	IsReady() bool
}

// HealthHandlers exposes liveness and readiness probes.
type HealthHandlers struct {
	checkers []ReadinessChecker
}

// NewHealthHandlers creates a new HealthHandlers.
func NewHealthHandlers(checkers ...ReadinessChecker) *HealthHandlers {
	return &HealthHandlers{checkers: checkers}
}

// Routes mounts the health endpoints.
func (h *HealthHandlers) Routes(r chi.Router) {
	r.Get("/livez", h.Livez)
	r.Get("/readyz", h.Readyz)
}

// Livez always reports alive while the process is serving.
func (h *HealthHandlers) Livez(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}

// Readyz reports ready only when every registered dependency is ready.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	for _, checker := range h.checkers {
		if !checker.IsReady() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT READY\n"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}
