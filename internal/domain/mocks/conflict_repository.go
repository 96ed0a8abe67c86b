// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// MockConflictRepository implements ConflictRepository for testing
type MockConflictRepository struct {
	mock.Mock
}

func (m *MockConflictRepository) Create(ctx context.Context, conflict *models.Conflict) error {
	args := m.Called(ctx, conflict)
	return args.Error(0)
}

func (m *MockConflictRepository) Get(ctx context.Context, conflictUID string) (*models.Conflict, error) {
	args := m.Called(ctx, conflictUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conflict), args.Error(1)
}

func (m *MockConflictRepository) GetWithRevision(ctx context.Context, conflictUID string) (*models.Conflict, uint64, error) {
	args := m.Called(ctx, conflictUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Conflict), args.Get(1).(uint64), args.Error(2)
}

func (m *MockConflictRepository) Update(ctx context.Context, conflict *models.Conflict, revision uint64) error {
	args := m.Called(ctx, conflict, revision)
	return args.Error(0)
}

func (m *MockConflictRepository) ListAll(ctx context.Context) ([]*models.Conflict, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Conflict), args.Error(1)
}
