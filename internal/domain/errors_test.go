// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_TypeMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"validation", NewValidationError("bad input"), ErrorTypeValidation},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound},
		{"state violation", NewStateViolationError("terminal"), ErrorTypeStateViolation},
		{"conflict", NewConflictError("modified"), ErrorTypeConflict},
		{"internal", NewInternalError("broken"), ErrorTypeInternal},
		{"unavailable", NewUnavailableError("down"), ErrorTypeUnavailable},
		{"plain error defaults to internal", errors.New("plain"), ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorType(tt.err))
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("kv write failed")
	err := NewInternalError("failed to create meeting", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to create meeting")
}

func TestDomainError_WrappedTypeSurvives(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewNotFoundError("missing meeting"))
	assert.Equal(t, ErrorTypeNotFound, GetErrorType(err))
}
