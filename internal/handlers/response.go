// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

// Package handlers contains the HTTP glue over the scheduling services.
// Handlers decode, delegate and encode; all business rules live in the
// service layer.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/pkg/constants"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes the payload with the given status. Encoding failures are
// logged; the status line has already been written by then.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", logging.ErrKey, err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		status = http.StatusBadRequest
	case domain.ErrorTypeNotFound:
		status = http.StatusNotFound
	case domain.ErrorTypeStateViolation, domain.ErrorTypeConflict:
		status = http.StatusConflict
	case domain.ErrorTypeUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", logging.ErrKey, err)
	} else {
		slog.DebugContext(r.Context(), "request rejected", logging.ErrKey, err, "status", status)
	}

	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return domain.NewValidationError("invalid request body", err)
	}
	return nil
}

// parseTimeParam parses an RFC 3339 query parameter.
func parseTimeParam(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.NewValidationError(fmt.Sprintf("missing %s parameter", name))
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(fmt.Sprintf("invalid %s parameter", name), err)
	}
	return t, nil
}

// principal returns the verified caller identity placed in the context by
// the identity middleware.
func principal(r *http.Request) (uid, role string, err error) {
	uid, _ = r.Context().Value(constants.ExecutiveContextID).(string)
	if uid == "" {
		return "", "", domain.NewValidationError("missing caller identity header")
	}
	role, _ = r.Context().Value(constants.ExecutiveRoleContextID).(string)
	return uid, role, nil
}

// requireSecretary enforces the secretary-only gate on conflict lifecycle
// actions.
func requireSecretary(r *http.Request) (uid string, role string, err error) {
	uid, role, err = principal(r)
	if err != nil {
		return "", "", err
	}
	if role != string(models.RoleSecretary) {
		return "", "", domain.NewStateViolationError("only a secretary can perform this action")
	}
	return uid, role, nil
}
