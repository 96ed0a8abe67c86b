// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/pkg/utils"
)

// CreateTaskRequest is a direct task creation payload. EndTime may be zero,
// in which case the task runs for the default duration.
type CreateTaskRequest struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// TaskService manages ad-hoc tasks embedded in an executive's calendar.
type TaskService struct {
	executiveRepository domain.ExecutiveRepository
	messageBuilder      domain.MessageBuilder
}

// NewTaskService creates a new TaskService.
func NewTaskService(executiveRepository domain.ExecutiveRepository, messageBuilder domain.MessageBuilder) *TaskService {
	return &TaskService{
		executiveRepository: executiveRepository,
		messageBuilder:      messageBuilder,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *TaskService) ServiceReady() bool {
	return s.executiveRepository != nil && s.messageBuilder != nil
}

// CreateTask appends an ad-hoc task to the executive's calendar. A missing
// end time defaults to thirty minutes after the start.
func (s *TaskService) CreateTask(ctx context.Context, executiveUID string, req *CreateTaskRequest, now time.Time) (*models.Task, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("task service is not ready")
	}

	if req.Title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if req.StartTime.IsZero() {
		return nil, domain.NewValidationError("start time is required")
	}
	end := req.EndTime
	if end.IsZero() {
		end = req.StartTime.Add(models.DefaultTaskDuration)
	}
	if !models.NewTimeInterval(req.StartTime, end).IsValid() {
		return nil, domain.NewValidationError("end time must be after start time")
	}

	ctx = logging.AppendCtx(ctx, slog.String("executive_uid", executiveUID))

	executive, revision, err := s.executiveRepository.GetWithRevision(ctx, executiveUID)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		UID:         uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     end,
		Status:      models.TaskStatusScheduled,
		CreatedAt:   utils.TimePtr(now),
		UpdatedAt:   utils.TimePtr(now),
	}
	executive.AppendTask(task)

	if err := s.executiveRepository.Update(ctx, executive, revision); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "task created", "task_uid", task.UID)

	s.indexExecutive(ctx, executive)

	return &task, nil
}

// DeleteTask removes a task from the executive's calendar.
func (s *TaskService) DeleteTask(ctx context.Context, executiveUID, taskUID string) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("task service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("executive_uid", executiveUID))
	ctx = logging.AppendCtx(ctx, slog.String("task_uid", taskUID))

	executive, revision, err := s.executiveRepository.GetWithRevision(ctx, executiveUID)
	if err != nil {
		return err
	}

	if !executive.RemoveTask(taskUID) {
		return domain.NewNotFoundError(fmt.Sprintf("task not found: %s", taskUID))
	}

	if err := s.executiveRepository.Update(ctx, executive, revision); err != nil {
		return err
	}

	slog.InfoContext(ctx, "task deleted")

	s.indexExecutive(ctx, executive)

	return nil
}

func (s *TaskService) indexExecutive(ctx context.Context, executive *models.Executive) {
	if err := s.messageBuilder.SendIndexExecutive(ctx, models.ActionUpdated, *executive); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for executive",
			logging.ErrKey, err, "executive_uid", executive.UID)
	}
}
