// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"sync"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/pkg/concurrent"
)

// reportWorkerCount bounds the per-executive fan-out when building a
// conflict report.
const reportWorkerCount = 10

// ConflictReportBuilder aggregates per-executive colliding tasks and meetings
// into a structured report. Conflicts must be resolvable against both ad-hoc
// tasks and other meetings, since either can legitimately occupy an
// executive's calendar; checking only one would produce false "free" results.
type ConflictReportBuilder struct {
	meetingRepository domain.MeetingRepository
	pool              *concurrent.WorkerPool
}

// NewConflictReportBuilder creates a new ConflictReportBuilder.
func NewConflictReportBuilder(meetingRepository domain.MeetingRepository) *ConflictReportBuilder {
	return &ConflictReportBuilder{
		meetingRepository: meetingRepository,
		pool:              concurrent.NewWorkerPool(reportWorkerCount),
	}
}

// ServiceReady checks if the builder is ready for use.
func (b *ConflictReportBuilder) ServiceReady() bool {
	return b.meetingRepository != nil
}

// Build returns one ExecutiveOverlap per executive that has at least one
// colliding task or meeting for the candidate interval. Executives with a
// free calendar do not appear in the result. Result order follows the input
// order.
func (b *ConflictReportBuilder) Build(ctx context.Context, executives []*models.Executive, candidate models.TimeInterval) ([]models.ExecutiveOverlap, error) {
	if !b.ServiceReady() {
		return nil, domain.NewUnavailableError("conflict report builder is not ready")
	}
	if !candidate.IsValid() {
		return nil, domain.NewValidationError("candidate interval must end after it starts")
	}

	// One fetch for all executives; the per-executive pass is a pure filter.
	meetings, err := b.meetingRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.ExecutiveOverlap, len(executives))
	var mu sync.Mutex

	functions := make([]func() error, 0, len(executives))
	for i, executive := range executives {
		functions = append(functions, func() error {
			entry := overlapEntryFor(executive, meetings, candidate)
			if entry != nil {
				mu.Lock()
				entries[i] = entry
				mu.Unlock()
			}
			return nil
		})
	}

	if err := b.pool.Run(ctx, functions...); err != nil {
		return nil, domain.NewInternalError("failed to build conflict report", err)
	}

	report := []models.ExecutiveOverlap{}
	for _, entry := range entries {
		if entry != nil {
			report = append(report, *entry)
		}
	}

	return report, nil
}

// overlapEntryFor collects the executive's colliding tasks and meetings for
// the candidate interval, or nil when the executive is free.
func overlapEntryFor(executive *models.Executive, meetings []*models.Meeting, candidate models.TimeInterval) *models.ExecutiveOverlap {
	items := []models.ConflictItem{}

	for _, task := range executive.OverlappingTasks(candidate) {
		items = append(items, models.ConflictItem{
			Type:      models.ConflictItemTask,
			RefUID:    task.UID,
			Title:     task.Title,
			StartTime: task.StartTime,
			EndTime:   task.EndTime,
			Notes:     task.Description,
			Status:    string(task.Status),
		})
	}

	for _, meeting := range meetings {
		if !meeting.Blocks() {
			// Cancelled and completed meetings never count as conflicts.
			continue
		}
		if !meeting.Interval().Overlaps(candidate) {
			continue
		}
		if !meeting.HasAttendee(executive.UID, executive.Email) {
			continue
		}
		items = append(items, models.ConflictItem{
			Type:      models.ConflictItemMeeting,
			RefUID:    meeting.UID,
			Title:     meeting.Title,
			StartTime: meeting.StartTime,
			EndTime:   meeting.EndTime,
			Notes:     meeting.Description,
			Status:    string(meeting.Status),
		})
	}

	if len(items) == 0 {
		return nil
	}

	return &models.ExecutiveOverlap{
		ExecutiveUID: executive.UID,
		Email:        executive.Email,
		Items:        items,
	}
}
