// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// ExecutiveRepository defines the interface for executive storage operations.
// The executive aggregate embeds the owned task collection, so task mutation
// is a read-modify-write of the whole document under its revision.
type ExecutiveRepository interface {
	Create(ctx context.Context, executive *models.Executive) error
	Exists(ctx context.Context, executiveUID string) (bool, error)
	Get(ctx context.Context, executiveUID string) (*models.Executive, error)
	GetWithRevision(ctx context.Context, executiveUID string) (*models.Executive, uint64, error)
	GetByEmail(ctx context.Context, email string) (*models.Executive, error)
	Update(ctx context.Context, executive *models.Executive, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Executive, error)
}

// MeetingRepository defines the interface for meeting storage operations.
// This interface can be implemented by different storage backends (NATS KV,
// PostgreSQL, etc.)
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	Exists(ctx context.Context, meetingUID string) (bool, error)
	Get(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	Update(ctx context.Context, meeting *models.Meeting, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Meeting, error)
}

// ConflictRepository defines the interface for conflict ticket storage
// operations.
type ConflictRepository interface {
	Create(ctx context.Context, conflict *models.Conflict) error
	Get(ctx context.Context, conflictUID string) (*models.Conflict, error)
	GetWithRevision(ctx context.Context, conflictUID string) (*models.Conflict, uint64, error)
	Update(ctx context.Context, conflict *models.Conflict, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Conflict, error)
}

// NotificationRepository defines the interface for notification record
// storage operations.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	Get(ctx context.Context, notificationUID string) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientUID string) ([]*models.Notification, error)
}
