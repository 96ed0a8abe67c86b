// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package models

import "time"

// NATS subjects that the scheduling service sends messages about.
const (
	// IndexMeetingSubject is the subject for the meeting indexing.
	// The subject is of the form: execdesk.index.meeting
	IndexMeetingSubject = "execdesk.index.meeting"

	// IndexExecutiveSubject is the subject for the executive indexing.
	// The subject is of the form: execdesk.index.executive
	IndexExecutiveSubject = "execdesk.index.executive"

	// IndexConflictSubject is the subject for the conflict ticket indexing.
	// The subject is of the form: execdesk.index.conflict
	IndexConflictSubject = "execdesk.index.conflict"

	// IndexNotificationSubject is the subject for the notification indexing.
	// The subject is of the form: execdesk.index.notification
	IndexNotificationSubject = "execdesk.index.notification"

	// MeetingScheduledSubject is the subject for clean-path meeting creation events.
	// The subject is of the form: execdesk.scheduling-api.meeting_scheduled
	MeetingScheduledSubject = "execdesk.scheduling-api.meeting_scheduled"

	// MeetingCancelledSubject is the subject for meeting cancellation events.
	// The subject is of the form: execdesk.scheduling-api.meeting_cancelled
	MeetingCancelledSubject = "execdesk.scheduling-api.meeting_cancelled"

	// ConflictDetectedSubject is the subject for conflict detection events.
	// The subject is of the form: execdesk.scheduling-api.conflict_detected
	ConflictDetectedSubject = "execdesk.scheduling-api.conflict_detected"

	// ConflictEscalatedSubject is the subject for conflict escalation events.
	// The subject is of the form: execdesk.scheduling-api.conflict_escalated
	ConflictEscalatedSubject = "execdesk.scheduling-api.conflict_escalated"
)

// MessageAction is a type for the action of an entity message.
type MessageAction string

const (
	// ActionCreated is the action for a created entity.
	ActionCreated MessageAction = "created"
	// ActionUpdated is the action for an updated entity.
	ActionUpdated MessageAction = "updated"
	// ActionDeleted is the action for a deleted entity.
	ActionDeleted MessageAction = "deleted"
)

// SchedulingIndexerMessage is the schema for messages sent to the indexing
// consumers.
type SchedulingIndexerMessage struct {
	Action  MessageAction     `json:"action"`
	Headers map[string]string `json:"headers,omitempty"`
	Data    any               `json:"data"`
	Tags    []string          `json:"tags"`
}

// MeetingEventMessage is published on meeting lifecycle events so downstream
// consumers (dashboards, mailers) can react without polling.
type MeetingEventMessage struct {
	MeetingUID string    `json:"meeting_uid"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Actor      string    `json:"actor,omitempty"`
	Recipients []string  `json:"recipients,omitempty"`
}

// ConflictEventMessage is published when a conflict ticket is detected or
// escalated.
type ConflictEventMessage struct {
	ConflictUID string   `json:"conflict_uid"`
	MeetingUID  string   `json:"meeting_uid,omitempty"`
	Status      string   `json:"status"`
	RequestedBy string   `json:"requested_by,omitempty"`
	Recipients  []string `json:"recipients,omitempty"`
}
