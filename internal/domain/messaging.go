// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/execdesk/scheduling-service/internal/domain/models"
)

// MeetingIndexSender handles indexing operations for meetings.
type MeetingIndexSender interface {
	SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.Meeting) error
	SendDeleteIndexMeeting(ctx context.Context, data string) error
}

// ExecutiveIndexSender handles indexing operations for executives.
type ExecutiveIndexSender interface {
	SendIndexExecutive(ctx context.Context, action models.MessageAction, data models.Executive) error
	SendDeleteIndexExecutive(ctx context.Context, data string) error
}

// ConflictIndexSender handles indexing operations for conflict tickets.
type ConflictIndexSender interface {
	SendIndexConflict(ctx context.Context, action models.MessageAction, data models.Conflict) error
	SendDeleteIndexConflict(ctx context.Context, data string) error
}

// NotificationIndexSender handles indexing operations for notifications.
type NotificationIndexSender interface {
	SendIndexNotification(ctx context.Context, action models.MessageAction, data models.Notification) error
}

// MeetingEventSender handles meeting lifecycle events.
type MeetingEventSender interface {
	SendMeetingScheduled(ctx context.Context, data models.MeetingEventMessage) error
	SendMeetingCancelled(ctx context.Context, data models.MeetingEventMessage) error
}

// ConflictEventSender handles conflict lifecycle events.
type ConflictEventSender interface {
	SendConflictDetected(ctx context.Context, data models.ConflictEventMessage) error
	SendConflictEscalated(ctx context.Context, data models.ConflictEventMessage) error
}

// MessageBuilder is the main interface that composes all messaging
// capabilities. Use this when a service needs access to multiple different
// domains.
type MessageBuilder interface {
	MeetingIndexSender
	ExecutiveIndexSender
	ConflictIndexSender
	NotificationIndexSender
	MeetingEventSender
	ConflictEventSender
}
