// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"strings"
	"time"
)

// ExecutiveRole distinguishes calendar owners from the secretaries who
// resolve conflict tickets on their behalf.
type ExecutiveRole string

const (
	RoleExecutive ExecutiveRole = "executive"
	RoleSecretary ExecutiveRole = "secretary"
)

// Executive is a calendar-owning principal. Tasks are an owned, embedded
// collection: all mutation goes through the methods below so the
// idempotent-append and cancellation-mirroring invariants stay centralized
// instead of callers splicing the slice directly.
type Executive struct {
	UID          string         `json:"uid"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         ExecutiveRole  `json:"role"`
	Tasks        []Task         `json:"tasks,omitempty"`
	LeavePeriods []TimeInterval `json:"leave_periods,omitempty"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

// EmailMatches compares emails case-insensitively. Email is the identity key
// for invitee resolution.
func (e *Executive) EmailMatches(email string) bool {
	return strings.EqualFold(e.Email, email)
}

// FindTaskByMeeting returns the task back-referencing the given meeting, or
// nil when none exists.
func (e *Executive) FindTaskByMeeting(meetingUID string) *Task {
	for i := range e.Tasks {
		if e.Tasks[i].MeetingUID == meetingUID {
			return &e.Tasks[i]
		}
	}
	return nil
}

// FindTask returns the task with the given UID, or nil.
func (e *Executive) FindTask(taskUID string) *Task {
	for i := range e.Tasks {
		if e.Tasks[i].UID == taskUID {
			return &e.Tasks[i]
		}
	}
	return nil
}

// AppendTask adds a task to the executive's calendar.
func (e *Executive) AppendTask(task Task) {
	e.Tasks = append(e.Tasks, task)
}

// AppendMeetingTask adds a task back-referencing a meeting. The append is
// idempotent per meeting: a second attempt for the same meeting UID is a
// no-op and returns false.
func (e *Executive) AppendMeetingTask(task Task) bool {
	if task.MeetingUID == "" {
		return false
	}
	if e.FindTaskByMeeting(task.MeetingUID) != nil {
		return false
	}
	e.Tasks = append(e.Tasks, task)
	return true
}

// RescheduleMeetingTask moves the task back-referencing the meeting to the
// new interval and marks it scheduled, appending a fresh task under taskUID
// when none exists yet. Used when a conflict resolution rewrites the meeting
// time. The caller mints taskUID; this package does not generate identifiers.
func (e *Executive) RescheduleMeetingTask(taskUID, meetingUID, title string, interval TimeInterval, now time.Time) {
	if task := e.FindTaskByMeeting(meetingUID); task != nil {
		task.StartTime = interval.Start
		task.EndTime = interval.End
		task.Status = TaskStatusScheduled
		task.UpdatedAt = &now
		return
	}
	e.Tasks = append(e.Tasks, Task{
		UID:        taskUID,
		Title:      title,
		StartTime:  interval.Start,
		EndTime:    interval.End,
		MeetingUID: meetingUID,
		Status:     TaskStatusScheduled,
		CreatedAt:  &now,
		UpdatedAt:  &now,
	})
}

// CancelMeetingTask mirrors a meeting cancellation onto the back-referenced
// task. Returns false when the executive has no task for the meeting.
func (e *Executive) CancelMeetingTask(meetingUID string, now time.Time) bool {
	task := e.FindTaskByMeeting(meetingUID)
	if task == nil || task.Status == TaskStatusCancelled {
		return false
	}
	task.Status = TaskStatusCancelled
	task.UpdatedAt = &now
	return true
}

// RemoveTask deletes a task from the calendar. This is the only path that
// removes a task; meeting cancellation only flips its status.
func (e *Executive) RemoveTask(taskUID string) bool {
	for i := range e.Tasks {
		if e.Tasks[i].UID == taskUID {
			e.Tasks = append(e.Tasks[:i], e.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// OverlappingTasks returns the blocking tasks that intersect the candidate
// interval.
func (e *Executive) OverlappingTasks(candidate TimeInterval) []Task {
	var out []Task
	for i := range e.Tasks {
		if e.Tasks[i].Blocks() && e.Tasks[i].Interval().Overlaps(candidate) {
			out = append(out, e.Tasks[i])
		}
	}
	return out
}

// Tags generates a consistent set of tags for the executive for searching/indexing.
func (e *Executive) Tags() []string {
	tags := []string{}

	if e == nil {
		return nil
	}

	if e.UID != "" {
		tags = append(tags, e.UID)
		tags = append(tags, fmt.Sprintf("executive_uid:%s", e.UID))
	}

	if e.Email != "" {
		tags = append(tags, fmt.Sprintf("email:%s", strings.ToLower(e.Email)))
	}

	if e.Role != "" {
		tags = append(tags, fmt.Sprintf("role:%s", e.Role))
	}

	return tags
}
