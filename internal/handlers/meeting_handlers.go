// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/execdesk/scheduling-service/internal/service"
)

// MeetingHandlers exposes the meeting lifecycle over HTTP.
type MeetingHandlers struct {
	meetingService *service.MeetingService
	rsvpService    *service.RSVPService
}

// NewMeetingHandlers creates a new MeetingHandlers.
func NewMeetingHandlers(meetingService *service.MeetingService, rsvpService *service.RSVPService) *MeetingHandlers {
	return &MeetingHandlers{
		meetingService: meetingService,
		rsvpService:    rsvpService,
	}
}

// Routes mounts the meeting endpoints.
func (h *MeetingHandlers) Routes(r chi.Router) {
	r.Post("/meetings", h.CreateMeeting)
	r.Get("/meetings", h.ListMeetings)
	r.Get("/meetings/{uid}", h.GetMeeting)
	r.Post("/meetings/{uid}/rsvp", h.Respond)
	r.Post("/meetings/{uid}/cancel", h.CancelMeeting)
	r.Post("/meetings/{uid}/complete", h.CompleteMeeting)
}

type createMeetingPayload struct {
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Venue             string    `json:"venue,omitempty"`
	Project           string    `json:"project,omitempty"`
	ParticipantEmails []string  `json:"participant_emails"`
}

// CreateMeeting handles POST /meetings. A clean creation returns 201, a
// creation parked behind a conflict ticket returns 202.
func (h *MeetingHandlers) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	actorUID, _, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload createMeetingPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.meetingService.CreateMeeting(r.Context(), &service.CreateMeetingRequest{
		Title:             payload.Title,
		Description:       payload.Description,
		StartTime:         payload.StartTime,
		EndTime:           payload.EndTime,
		Venue:             payload.Venue,
		Project:           payload.Project,
		CreatedBy:         actorUID,
		ParticipantEmails: payload.ParticipantEmails,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Conflict != nil {
		status = http.StatusAccepted
	}
	writeJSON(w, r, status, result)
}

// GetMeeting handles GET /meetings/{uid}.
func (h *MeetingHandlers) GetMeeting(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.meetingService.GetMeeting(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, meeting)
}

// ListMeetings handles GET /meetings.
func (h *MeetingHandlers) ListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.meetingService.ListMeetings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, meetings)
}

type rsvpPayload struct {
	Response string `json:"response"`
}

// Respond handles POST /meetings/{uid}/rsvp.
func (h *MeetingHandlers) Respond(w http.ResponseWriter, r *http.Request) {
	actorUID, _, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload rsvpPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	meeting, err := h.rsvpService.Respond(r.Context(), chi.URLParam(r, "uid"), actorUID, payload.Response, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, meeting)
}

// CancelMeeting handles POST /meetings/{uid}/cancel.
func (h *MeetingHandlers) CancelMeeting(w http.ResponseWriter, r *http.Request) {
	actorUID, _, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	meeting, err := h.meetingService.CancelMeeting(r.Context(), chi.URLParam(r, "uid"), actorUID, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, meeting)
}

// CompleteMeeting handles POST /meetings/{uid}/complete.
func (h *MeetingHandlers) CompleteMeeting(w http.ResponseWriter, r *http.Request) {
	actorUID, _, err := principal(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	meeting, err := h.meetingService.CompleteMeeting(r.Context(), chi.URLParam(r, "uid"), actorUID, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, meeting)
}
