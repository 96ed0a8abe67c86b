// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/pkg/constants"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation error",
			err:        domain.NewValidationError("bad input"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found error",
			err:        domain.NewNotFoundError("no such meeting"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "state violation error",
			err:        domain.NewStateViolationError("conflict is resolved"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "conflict error",
			err:        domain.NewConflictError("revision mismatch"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unavailable error",
			err:        domain.NewUnavailableError("store unreachable"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "internal error",
			err:        domain.NewInternalError("boom"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "plain error defaults to internal",
			err:        errors.New("unexpected"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/meetings", nil)

			writeError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/meetings", strings.NewReader(`{"title":"sync"}`))

		var p payload
		require.NoError(t, decodeJSON(req, &p))
		assert.Equal(t, "sync", p.Title)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/meetings", strings.NewReader(`{"title":"sync","bogus":1}`))

		var p payload
		err := decodeJSON(req, &p)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func TestParseTimeParam(t *testing.T) {
	t.Run("valid RFC 3339 value", func(t *testing.T) {
		parsed, err := parseTimeParam("2026-03-10T14:00:00Z", "start")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := parseTimeParam("", "start")
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("malformed value", func(t *testing.T) {
		_, err := parseTimeParam("tomorrow at noon", "end")
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func requestWithIdentity(uid, role string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/conflicts", nil)
	ctx := req.Context()
	if uid != "" {
		ctx = context.WithValue(ctx, constants.ExecutiveContextID, uid)
	}
	if role != "" {
		ctx = context.WithValue(ctx, constants.ExecutiveRoleContextID, role)
	}
	return req.WithContext(ctx)
}

func TestPrincipal(t *testing.T) {
	t.Run("identity present", func(t *testing.T) {
		uid, role, err := principal(requestWithIdentity("exec-1", "executive"))
		require.NoError(t, err)
		assert.Equal(t, "exec-1", uid)
		assert.Equal(t, "executive", role)
	})

	t.Run("identity missing", func(t *testing.T) {
		_, _, err := principal(requestWithIdentity("", ""))
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func TestRequireSecretary(t *testing.T) {
	t.Run("secretary allowed", func(t *testing.T) {
		uid, role, err := requireSecretary(requestWithIdentity("sec-1", "secretary"))
		require.NoError(t, err)
		assert.Equal(t, "sec-1", uid)
		assert.Equal(t, "secretary", role)
	})

	t.Run("executive rejected", func(t *testing.T) {
		_, _, err := requireSecretary(requestWithIdentity("exec-1", "executive"))
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeStateViolation, domain.GetErrorType(err))
	})

	t.Run("missing identity rejected", func(t *testing.T) {
		_, _, err := requireSecretary(requestWithIdentity("", ""))
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

type staticChecker struct{ ready bool }

func (c staticChecker) IsReady() bool { return c.ready }

func TestHealthHandlers(t *testing.T) {
	t.Run("livez always OK", func(t *testing.T) {
		h := NewHealthHandlers(staticChecker{ready: false})
		rec := httptest.NewRecorder()

		h.Livez(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz OK when all checkers ready", func(t *testing.T) {
		h := NewHealthHandlers(staticChecker{ready: true}, staticChecker{ready: true})
		rec := httptest.NewRecorder()

		h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz unavailable when a checker is not ready", func(t *testing.T) {
		h := NewHealthHandlers(staticChecker{ready: true}, staticChecker{ready: false})
		rec := httptest.NewRecorder()

		h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
