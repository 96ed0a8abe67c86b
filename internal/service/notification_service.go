// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/pkg/concurrent"
	"github.com/execdesk/scheduling-service/pkg/utils"
)

const notificationWorkerCount = 10

// NotificationService persists notification records and fans them out to
// recipients. Dispatch is strictly best-effort: a recipient that cannot be
// written is logged and skipped, and aggregate errors are returned only so
// callers can log them.
type NotificationService struct {
	notificationRepository domain.NotificationRepository
	executiveRepository    domain.ExecutiveRepository
	messageBuilder         domain.MessageBuilder
	pool                   *concurrent.WorkerPool
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationRepository domain.NotificationRepository,
	executiveRepository domain.ExecutiveRepository,
	messageBuilder domain.MessageBuilder,
) *NotificationService {
	return &NotificationService{
		notificationRepository: notificationRepository,
		executiveRepository:    executiveRepository,
		messageBuilder:         messageBuilder,
		pool:                   concurrent.NewWorkerPool(notificationWorkerCount),
	}
}

// ServiceReady checks if the service is ready for use.
func (s *NotificationService) ServiceReady() bool {
	return s.notificationRepository != nil &&
		s.executiveRepository != nil &&
		s.messageBuilder != nil
}

// NotifySecretaries delivers the notification to every registered secretary.
func (s *NotificationService) NotifySecretaries(ctx context.Context, req domain.NotificationRequest) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("notification service is not ready")
	}

	executives, err := s.executiveRepository.ListAll(ctx)
	if err != nil {
		return err
	}

	recipients := []string{}
	for _, executive := range executives {
		if executive.Role == models.RoleSecretary {
			recipients = append(recipients, executive.UID)
		}
	}
	if len(recipients) == 0 {
		slog.WarnContext(ctx, "no secretaries registered, dropping notification", "title", req.Title)
		return nil
	}

	return s.dispatch(ctx, recipients, req)
}

// NotifyExecutives delivers the notification to the given executives.
func (s *NotificationService) NotifyExecutives(ctx context.Context, executiveUIDs []string, req domain.NotificationRequest) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("notification service is not ready")
	}
	if len(executiveUIDs) == 0 {
		return nil
	}
	return s.dispatch(ctx, executiveUIDs, req)
}

// dispatch writes one notification record per recipient concurrently,
// collecting failures instead of stopping at the first one.
func (s *NotificationService) dispatch(ctx context.Context, recipients []string, req domain.NotificationRequest) error {
	now := time.Now()

	functions := make([]func() error, 0, len(recipients))
	for _, recipient := range recipients {
		recipient := recipient
		functions = append(functions, func() error {
			notification := &models.Notification{
				UID:          uuid.New().String(),
				RecipientUID: recipient,
				Title:        req.Title,
				Message:      req.Message,
				Channel:      req.Channel,
				Severity:     req.Severity,
				MeetingUID:   req.MeetingUID,
				ConflictUID:  req.ConflictUID,
				Metadata:     req.Metadata,
				CreatedAt:    utils.TimePtr(now),
			}
			if err := s.notificationRepository.Create(ctx, notification); err != nil {
				return err
			}
			if err := s.messageBuilder.SendIndexNotification(ctx, models.ActionCreated, *notification); err != nil {
				slog.ErrorContext(ctx, "failed to send index message for notification",
					logging.ErrKey, err, "notification_uid", notification.UID)
			}
			return nil
		})
	}

	if errs := s.pool.RunAll(ctx, functions...); len(errs) > 0 {
		for _, err := range errs {
			slog.ErrorContext(ctx, "notification dispatch failed", logging.ErrKey, err)
		}
		return domain.NewInternalError("some notifications failed to dispatch", errs[0])
	}

	slog.DebugContext(ctx, "notifications dispatched", "recipient_count", len(recipients))

	return nil
}

// GetNotification retrieves one notification by UID.
func (s *NotificationService) GetNotification(ctx context.Context, notificationUID string) (*models.Notification, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("notification service is not ready")
	}
	return s.notificationRepository.Get(ctx, notificationUID)
}

// ListNotifications returns every notification addressed to the recipient.
func (s *NotificationService) ListNotifications(ctx context.Context, recipientUID string) ([]*models.Notification, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("notification service is not ready")
	}
	return s.notificationRepository.ListByRecipient(ctx, recipientUID)
}
