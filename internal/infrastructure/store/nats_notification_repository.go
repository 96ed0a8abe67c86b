// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// NatsNotificationRepository is the NATS KV store repository for notification records.
type NatsNotificationRepository struct {
	*NatsBaseRepository[models.Notification]
}

// NewNatsNotificationRepository creates a new NATS KV store repository for notifications.
func NewNatsNotificationRepository(kvStore INatsKeyValue) *NatsNotificationRepository {
	return &NatsNotificationRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Notification](kvStore, "notification"),
	}
}

func (r *NatsNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.NatsBaseRepository.Create(ctx, notification.UID, notification)
}

// ListByRecipient returns the notifications addressed to one recipient.
func (r *NatsNotificationRepository) ListByRecipient(ctx context.Context, recipientUID string) ([]*models.Notification, error) {
	notifications, err := r.ListEntities(ctx)
	if err != nil {
		return nil, err
	}

	var out []*models.Notification
	for _, notification := range notifications {
		if notification.RecipientUID == recipientUID {
			out = append(out, notification)
		}
	}

	return out, nil
}
