// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/execdesk/scheduling-service/internal/domain"
)

// MockNotificationDispatcher implements NotificationDispatcher for testing
type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) NotifySecretaries(ctx context.Context, req domain.NotificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) NotifyExecutives(ctx context.Context, executiveUIDs []string, req domain.NotificationRequest) error {
	args := m.Called(ctx, executiveUIDs, req)
	return args.Error(0)
}
