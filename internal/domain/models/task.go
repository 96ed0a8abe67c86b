// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package models

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	// TaskStatusScheduled indicates the task occupies the executive's calendar.
	TaskStatusScheduled TaskStatus = "scheduled"
	// TaskStatusCancelled indicates the task was cancelled, usually because the
	// owning meeting was cancelled.
	TaskStatusCancelled TaskStatus = "cancelled"
	// TaskStatusCompleted indicates the task is done.
	TaskStatusCompleted TaskStatus = "completed"
)

// DefaultTaskDuration is used when a task is created without an end time.
const DefaultTaskDuration = 30 * time.Minute

// Task is a calendar entry owned by exactly one executive. Tasks created from
// a meeting carry a weak back-reference to the meeting that generated them;
// the meeting never owns the task, so a cancelled meeting leaves its tasks in
// place for audit purposes.
type Task struct {
	UID         string     `json:"uid"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	MeetingUID  string     `json:"meeting_uid,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Interval returns the half-open occupancy interval of the task.
func (t *Task) Interval() TimeInterval {
	return TimeInterval{Start: t.StartTime, End: t.EndTime}
}

// Blocks reports whether the task still occupies calendar time. Cancelled and
// completed tasks never count as scheduling conflicts.
func (t *Task) Blocks() bool {
	return t.Status == TaskStatusScheduled
}
