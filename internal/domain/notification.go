// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// NotificationRequest carries the content of one fan-out.
type NotificationRequest struct {
	Title       string
	Message     string
	Channel     models.NotificationChannel
	Severity    models.NotificationSeverity
	MeetingUID  string
	ConflictUID string
	Metadata    map[string]string
}

// NotificationDispatcher fans notifications out to recipients. Dispatch is
// fire-and-forget from the caller's perspective: a failed fan-out must never
// fail or roll back the operation that triggered it, so callers log returned
// errors and move on.
type NotificationDispatcher interface {
	// NotifySecretaries delivers the request to every registered secretary.
	NotifySecretaries(ctx context.Context, req NotificationRequest) error
	// NotifyExecutives delivers the request to the given executives.
	NotifyExecutives(ctx context.Context, executiveUIDs []string, req NotificationRequest) error
}
