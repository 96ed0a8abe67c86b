// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// NatsExecutiveRepository is the NATS KV store repository for executives.
type NatsExecutiveRepository struct {
	*NatsBaseRepository[models.Executive]
}

// NewNatsExecutiveRepository creates a new NATS KV store repository for executives.
func NewNatsExecutiveRepository(kvStore INatsKeyValue) *NatsExecutiveRepository {
	return &NatsExecutiveRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Executive](kvStore, "executive"),
	}
}

func (r *NatsExecutiveRepository) Create(ctx context.Context, executive *models.Executive) error {
	return r.NatsBaseRepository.Create(ctx, executive.UID, executive)
}

func (r *NatsExecutiveRepository) Update(ctx context.Context, executive *models.Executive, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, executive.UID, executive, revision)
}

// GetByEmail scans the bucket for the executive with the given email,
// matching case-insensitively. Email is the unique identity key.
func (r *NatsExecutiveRepository) GetByEmail(ctx context.Context, email string) (*models.Executive, error) {
	executives, err := r.ListEntities(ctx)
	if err != nil {
		return nil, err
	}

	for _, executive := range executives {
		if strings.EqualFold(executive.Email, email) {
			return executive, nil
		}
	}

	return nil, domain.NewNotFoundError(fmt.Sprintf("executive with email '%s' not found", email))
}

// ListAll returns every executive in the bucket.
func (r *NatsExecutiveRepository) ListAll(ctx context.Context) ([]*models.Executive, error) {
	return r.ListEntities(ctx)
}
