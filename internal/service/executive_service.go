// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/pkg/utils"
)

// CreateExecutiveRequest registers an executive or secretary. Email is the
// identity key and must be unique.
type CreateExecutiveRequest struct {
	Name  string
	Email string
	Role  models.ExecutiveRole
}

// ExecutiveService manages the executive directory.
type ExecutiveService struct {
	executiveRepository domain.ExecutiveRepository
	messageBuilder      domain.MessageBuilder
}

// NewExecutiveService creates a new ExecutiveService.
func NewExecutiveService(executiveRepository domain.ExecutiveRepository, messageBuilder domain.MessageBuilder) *ExecutiveService {
	return &ExecutiveService{
		executiveRepository: executiveRepository,
		messageBuilder:      messageBuilder,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ExecutiveService) ServiceReady() bool {
	return s.executiveRepository != nil && s.messageBuilder != nil
}

// CreateExecutive registers a new executive. The email must not already be
// registered.
func (s *ExecutiveService) CreateExecutive(ctx context.Context, req *CreateExecutiveRequest, now time.Time) (*models.Executive, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("executive service is not ready")
	}

	if req.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleExecutive
	}
	if role != models.RoleExecutive && role != models.RoleSecretary {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid role: %s", role))
	}

	if existing, err := s.executiveRepository.GetByEmail(ctx, email); err == nil {
		return nil, domain.NewConflictError(fmt.Sprintf("email already registered to executive %s", existing.UID))
	} else if domain.GetErrorType(err) != domain.ErrorTypeNotFound {
		return nil, err
	}

	executive := &models.Executive{
		UID:       uuid.New().String(),
		Name:      req.Name,
		Email:     email,
		Role:      role,
		CreatedAt: utils.TimePtr(now),
		UpdatedAt: utils.TimePtr(now),
	}

	if err := s.executiveRepository.Create(ctx, executive); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "executive created",
		"executive_uid", executive.UID, "role", string(role))

	if err := s.messageBuilder.SendIndexExecutive(ctx, models.ActionCreated, *executive); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for executive", logging.ErrKey, err)
	}

	return executive, nil
}

// GetExecutive retrieves one executive by UID.
func (s *ExecutiveService) GetExecutive(ctx context.Context, executiveUID string) (*models.Executive, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("executive service is not ready")
	}
	return s.executiveRepository.Get(ctx, executiveUID)
}

// ListExecutives returns every registered executive.
func (s *ExecutiveService) ListExecutives(ctx context.Context) ([]*models.Executive, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("executive service is not ready")
	}
	return s.executiveRepository.ListAll(ctx)
}
