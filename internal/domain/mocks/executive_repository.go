// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// MockExecutiveRepository implements ExecutiveRepository for testing
type MockExecutiveRepository struct {
	mock.Mock
}

func (m *MockExecutiveRepository) Create(ctx context.Context, executive *models.Executive) error {
	args := m.Called(ctx, executive)
	return args.Error(0)
}

func (m *MockExecutiveRepository) Exists(ctx context.Context, executiveUID string) (bool, error) {
	args := m.Called(ctx, executiveUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockExecutiveRepository) Get(ctx context.Context, executiveUID string) (*models.Executive, error) {
	args := m.Called(ctx, executiveUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Executive), args.Error(1)
}

func (m *MockExecutiveRepository) GetWithRevision(ctx context.Context, executiveUID string) (*models.Executive, uint64, error) {
	args := m.Called(ctx, executiveUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Executive), args.Get(1).(uint64), args.Error(2)
}

func (m *MockExecutiveRepository) GetByEmail(ctx context.Context, email string) (*models.Executive, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Executive), args.Error(1)
}

func (m *MockExecutiveRepository) Update(ctx context.Context, executive *models.Executive, revision uint64) error {
	args := m.Called(ctx, executive, revision)
	return args.Error(0)
}

func (m *MockExecutiveRepository) ListAll(ctx context.Context) ([]*models.Executive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Executive), args.Error(1)
}
