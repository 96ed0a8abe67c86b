// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/service"
)

// ConflictHandlers exposes the conflict ticket lifecycle over HTTP. All
// state-changing endpoints are secretary-only.
type ConflictHandlers struct {
	conflictService *service.ConflictService
}

// NewConflictHandlers creates a new ConflictHandlers.
func NewConflictHandlers(conflictService *service.ConflictService) *ConflictHandlers {
	return &ConflictHandlers{conflictService: conflictService}
}

// Routes mounts the conflict endpoints.
func (h *ConflictHandlers) Routes(r chi.Router) {
	r.Post("/conflicts", h.LogConflict)
	r.Get("/conflicts", h.ListConflicts)
	r.Get("/conflicts/{uid}", h.GetConflict)
	r.Post("/conflicts/{uid}/proposals", h.AddProposal)
	r.Post("/conflicts/{uid}/consultations", h.RecordConsultation)
	r.Post("/conflicts/{uid}/resolve", h.Resolve)
	r.Post("/conflicts/{uid}/escalate", h.Escalate)
}

type logConflictPayload struct {
	MeetingUID        string                    `json:"meeting_uid,omitempty"`
	ParticipantEmails []string                  `json:"participant_emails,omitempty"`
	ParticipantUIDs   []string                  `json:"participant_uids,omitempty"`
	Overlaps          []models.ExecutiveOverlap `json:"overlaps,omitempty"`
	Notes             string                    `json:"notes,omitempty"`
}

// LogConflict handles POST /conflicts, the standalone ticket entry point.
func (h *ConflictHandlers) LogConflict(w http.ResponseWriter, r *http.Request) {
	actorUID, role, err := requireSecretary(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload logConflictPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	conflict, err := h.conflictService.LogConflict(r.Context(), &service.LogConflictRequest{
		MeetingUID:        payload.MeetingUID,
		ParticipantEmails: payload.ParticipantEmails,
		ParticipantUIDs:   payload.ParticipantUIDs,
		Overlaps:          payload.Overlaps,
		Notes:             payload.Notes,
	}, actorUID, role, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, conflict)
}

// ListConflicts handles GET /conflicts. The open=true query filters to
// non-terminal tickets.
func (h *ConflictHandlers) ListConflicts(w http.ResponseWriter, r *http.Request) {
	openOnly := r.URL.Query().Get("open") == "true"
	conflicts, err := h.conflictService.ListConflicts(r.Context(), openOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, conflicts)
}

// GetConflict handles GET /conflicts/{uid}.
func (h *ConflictHandlers) GetConflict(w http.ResponseWriter, r *http.Request) {
	conflict, err := h.conflictService.GetConflict(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, conflict)
}

type proposalPayload struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     string    `json:"notes,omitempty"`
}

// AddProposal handles POST /conflicts/{uid}/proposals.
func (h *ConflictHandlers) AddProposal(w http.ResponseWriter, r *http.Request) {
	actorUID, role, err := requireSecretary(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload proposalPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	conflict, err := h.conflictService.AddProposal(r.Context(), chi.URLParam(r, "uid"), &service.AddProposalRequest{
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Notes:     payload.Notes,
	}, actorUID, role, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, conflict)
}

type consultationPayload struct {
	ExecutiveUID string `json:"executive_uid,omitempty"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	Decision     string `json:"decision"`
	Notes        string `json:"notes,omitempty"`
}

// RecordConsultation handles POST /conflicts/{uid}/consultations.
func (h *ConflictHandlers) RecordConsultation(w http.ResponseWriter, r *http.Request) {
	actorUID, role, err := requireSecretary(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload consultationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	conflict, err := h.conflictService.RecordConsultation(r.Context(), chi.URLParam(r, "uid"), &service.RecordConsultationRequest{
		ExecutiveUID: payload.ExecutiveUID,
		Email:        payload.Email,
		Name:         payload.Name,
		Decision:     models.ConsultationDecision(payload.Decision),
		Notes:        payload.Notes,
	}, actorUID, role, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, conflict)
}

type resolvePayload struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     string    `json:"notes,omitempty"`
}

// Resolve handles POST /conflicts/{uid}/resolve.
func (h *ConflictHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	actorUID, role, err := requireSecretary(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload resolvePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	conflict, err := h.conflictService.Resolve(r.Context(), chi.URLParam(r, "uid"), &service.ResolveConflictRequest{
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
		Notes:     payload.Notes,
	}, actorUID, role, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, conflict)
}

type escalatePayload struct {
	Notes string `json:"notes,omitempty"`
}

// Escalate handles POST /conflicts/{uid}/escalate.
func (h *ConflictHandlers) Escalate(w http.ResponseWriter, r *http.Request) {
	actorUID, role, err := requireSecretary(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload escalatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	conflict, err := h.conflictService.Escalate(r.Context(), chi.URLParam(r, "uid"), payload.Notes, actorUID, role, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, conflict)
}
