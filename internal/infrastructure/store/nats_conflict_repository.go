// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// NatsConflictRepository is the NATS KV store repository for conflict tickets.
type NatsConflictRepository struct {
	*NatsBaseRepository[models.Conflict]
}

// NewNatsConflictRepository creates a new NATS KV store repository for conflict tickets.
func NewNatsConflictRepository(kvStore INatsKeyValue) *NatsConflictRepository {
	return &NatsConflictRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Conflict](kvStore, "conflict"),
	}
}

func (r *NatsConflictRepository) Create(ctx context.Context, conflict *models.Conflict) error {
	return r.NatsBaseRepository.Create(ctx, conflict.UID, conflict)
}

func (r *NatsConflictRepository) Update(ctx context.Context, conflict *models.Conflict, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, conflict.UID, conflict, revision)
}

// ListAll returns every conflict ticket in the bucket.
func (r *NatsConflictRepository) ListAll(ctx context.Context) ([]*models.Conflict, error) {
	return r.ListEntities(ctx)
}
