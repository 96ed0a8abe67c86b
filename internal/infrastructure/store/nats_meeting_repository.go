// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// NatsMeetingRepository is the NATS KV store repository for meetings.
type NatsMeetingRepository struct {
	*NatsBaseRepository[models.Meeting]
}

// NewNatsMeetingRepository creates a new NATS KV store repository for meetings.
func NewNatsMeetingRepository(kvStore INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Meeting](kvStore, "meeting"),
	}
}

func (r *NatsMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	return r.NatsBaseRepository.Create(ctx, meeting.UID, meeting)
}

func (r *NatsMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, meeting.UID, meeting, revision)
}

// ListAll returns every meeting in the bucket.
func (r *NatsMeetingRepository) ListAll(ctx context.Context) ([]*models.Meeting, error) {
	return r.ListEntities(ctx)
}
