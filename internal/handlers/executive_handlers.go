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

// ExecutiveHandlers exposes the executive directory, ad-hoc tasks, the
// availability check and the notification inbox over HTTP.
type ExecutiveHandlers struct {
	executiveService    *service.ExecutiveService
	taskService         *service.TaskService
	availabilityService *service.AvailabilityService
	notificationService *service.NotificationService
}

// NewExecutiveHandlers creates a new ExecutiveHandlers.
func NewExecutiveHandlers(
	executiveService *service.ExecutiveService,
	taskService *service.TaskService,
	availabilityService *service.AvailabilityService,
	notificationService *service.NotificationService,
) *ExecutiveHandlers {
	return &ExecutiveHandlers{
		executiveService:    executiveService,
		taskService:         taskService,
		availabilityService: availabilityService,
		notificationService: notificationService,
	}
}

// Routes mounts the executive endpoints.
func (h *ExecutiveHandlers) Routes(r chi.Router) {
	r.Post("/executives", h.CreateExecutive)
	r.Get("/executives", h.ListExecutives)
	r.Get("/executives/{uid}", h.GetExecutive)
	r.Post("/executives/{uid}/tasks", h.CreateTask)
	r.Delete("/executives/{uid}/tasks/{taskUID}", h.DeleteTask)
	r.Get("/executives/{uid}/availability", h.CheckAvailability)
	r.Get("/executives/{uid}/notifications", h.ListNotifications)
}

type createExecutivePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// CreateExecutive handles POST /executives.
func (h *ExecutiveHandlers) CreateExecutive(w http.ResponseWriter, r *http.Request) {
	var payload createExecutivePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	executive, err := h.executiveService.CreateExecutive(r.Context(), &service.CreateExecutiveRequest{
		Name:  payload.Name,
		Email: payload.Email,
		Role:  models.ExecutiveRole(payload.Role),
	}, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, executive)
}

// GetExecutive handles GET /executives/{uid}.
func (h *ExecutiveHandlers) GetExecutive(w http.ResponseWriter, r *http.Request) {
	executive, err := h.executiveService.GetExecutive(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, executive)
}

// ListExecutives handles GET /executives.
func (h *ExecutiveHandlers) ListExecutives(w http.ResponseWriter, r *http.Request) {
	executives, err := h.executiveService.ListExecutives(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, executives)
}

type createTaskPayload struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time,omitempty"`
}

// CreateTask handles POST /executives/{uid}/tasks.
func (h *ExecutiveHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var payload createTaskPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), chi.URLParam(r, "uid"), &service.CreateTaskRequest{
		Title:       payload.Title,
		Description: payload.Description,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
	}, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, task)
}

// DeleteTask handles DELETE /executives/{uid}/tasks/{taskUID}.
func (h *ExecutiveHandlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	err := h.taskService.DeleteTask(r.Context(), chi.URLParam(r, "uid"), chi.URLParam(r, "taskUID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}

// CheckAvailability handles GET /executives/{uid}/availability with start
// and end as RFC 3339 query parameters.
func (h *ExecutiveHandlers) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, err := parseTimeParam(query.Get("start"), "start")
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseTimeParam(query.Get("end"), "end")
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.availabilityService.CheckAvailability(r.Context(), chi.URLParam(r, "uid"),
		models.NewTimeInterval(start, end))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// ListNotifications handles GET /executives/{uid}/notifications.
func (h *ExecutiveHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.ListNotifications(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, notifications)
}
