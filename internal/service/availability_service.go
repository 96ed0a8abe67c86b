// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/logging"
)

// AvailabilityResult is the outcome of a free/busy probe for one executive.
type AvailabilityResult struct {
	Free      bool                  `json:"free"`
	Conflicts []models.ConflictItem `json:"conflicts"`
}

// AvailabilityService answers free/busy probes for a single executive.
type AvailabilityService struct {
	executiveRepository domain.ExecutiveRepository
	reportBuilder       *ConflictReportBuilder
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(executiveRepository domain.ExecutiveRepository, reportBuilder *ConflictReportBuilder) *AvailabilityService {
	return &AvailabilityService{
		executiveRepository: executiveRepository,
		reportBuilder:       reportBuilder,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *AvailabilityService) ServiceReady() bool {
	return s.executiveRepository != nil && s.reportBuilder != nil
}

// CheckAvailability decides free/busy for the candidate interval and returns
// the colliding items. The probe consults the same union the conflict report
// does, tasks plus meetings, so a single-executive check and a meeting
// creation can never disagree about whether a slot is free.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, executiveUID string, candidate models.TimeInterval) (*AvailabilityResult, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("availability service is not ready")
	}

	if !candidate.IsValid() {
		return nil, domain.NewValidationError("candidate interval must end after it starts")
	}

	ctx = logging.AppendCtx(ctx, slog.String("executive_uid", executiveUID))

	executive, err := s.executiveRepository.Get(ctx, executiveUID)
	if err != nil {
		return nil, err
	}

	report, err := s.reportBuilder.Build(ctx, []*models.Executive{executive}, candidate)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{Free: true, Conflicts: []models.ConflictItem{}}
	for _, entry := range report {
		result.Conflicts = append(result.Conflicts, entry.Items...)
	}
	result.Free = len(result.Conflicts) == 0

	slog.DebugContext(ctx, "availability checked", "free", result.Free, "conflict_count", len(result.Conflicts))

	return result, nil
}
