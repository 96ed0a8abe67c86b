// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"strings"
	"time"
)

// MeetingStatus represents the lifecycle state of a meeting.
type MeetingStatus string

const (
	// MeetingStatusPending indicates the meeting awaits RSVP responses.
	MeetingStatusPending MeetingStatus = "pending"
	// MeetingStatusScheduled indicates every invitee has accepted.
	MeetingStatusScheduled MeetingStatus = "scheduled"
	// MeetingStatusCancelled is terminal for invitee actions; the record is
	// retained as history.
	MeetingStatusCancelled MeetingStatus = "cancelled"
	// MeetingStatusCompleted is terminal, reachable only after the meeting end
	// time has passed.
	MeetingStatusCompleted MeetingStatus = "completed"
	// MeetingStatusConflict indicates the meeting is parked behind an open
	// conflict ticket.
	MeetingStatusConflict MeetingStatus = "conflict"
)

// ConflictStage mirrors the linked conflict ticket's state onto the meeting.
type ConflictStage string

const (
	ConflictStageOpen       ConflictStage = "open"
	ConflictStageInProgress ConflictStage = "in_progress"
	ConflictStageResolved   ConflictStage = "resolved"
	ConflictStageEscalated  ConflictStage = "escalated"
)

// InviteeStatus is the RSVP state of one invited entry.
type InviteeStatus string

const (
	InviteeStatusInvited   InviteeStatus = "invited"
	InviteeStatusAccepted  InviteeStatus = "accepted"
	InviteeStatusDeclined  InviteeStatus = "declined"
	InviteeStatusTentative InviteeStatus = "tentative"
	InviteeStatusCancelled InviteeStatus = "cancelled"
)

// Invitee is one entry in a meeting's invited list, identified by email and
// optionally resolved to an executive.
type Invitee struct {
	Email        string        `json:"email"`
	ExecutiveUID string        `json:"executive_uid,omitempty"`
	Status       InviteeStatus `json:"status"`
}

// Matches reports whether the invitee refers to the given executive, by UID
// first, falling back to a case-insensitive email match.
func (i *Invitee) Matches(executiveUID, email string) bool {
	if i.ExecutiveUID != "" && executiveUID != "" {
		return i.ExecutiveUID == executiveUID
	}
	return email != "" && strings.EqualFold(i.Email, email)
}

// Meeting is the root scheduling entity.
type Meeting struct {
	UID            string        `json:"uid"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	Venue          string        `json:"venue,omitempty"`
	Project        string        `json:"project,omitempty"`
	CreatedBy      string        `json:"created_by"`
	Participants   []string      `json:"participants,omitempty"`
	Invited        []Invitee     `json:"invited,omitempty"`
	Status         MeetingStatus `json:"status"`
	HasConflict    bool          `json:"has_conflict"`
	ConflictStatus ConflictStage `json:"conflict_status,omitempty"`
	ConflictNotes  string        `json:"conflict_notes,omitempty"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty"`
	CancelledBy    string        `json:"cancelled_by,omitempty"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	CreatedAt      *time.Time    `json:"created_at,omitempty"`
	UpdatedAt      *time.Time    `json:"updated_at,omitempty"`
}

// Interval returns the half-open occupancy interval of the meeting.
func (m *Meeting) Interval() TimeInterval {
	return TimeInterval{Start: m.StartTime, End: m.EndTime}
}

// Blocks reports whether the meeting occupies its attendees' calendars for
// conflict detection purposes. Cancelled and completed meetings never count.
func (m *Meeting) Blocks() bool {
	switch m.Status {
	case MeetingStatusPending, MeetingStatusScheduled, MeetingStatusConflict:
		return true
	}
	return false
}

// IsCreator reports whether the executive created the meeting.
func (m *Meeting) IsCreator(executiveUID string) bool {
	return executiveUID != "" && m.CreatedBy == executiveUID
}

// FindInvitee locates the invited entry for an executive, matching by UID
// first and falling back to case-insensitive email. Returns nil when the
// executive was not invited.
func (m *Meeting) FindInvitee(executiveUID, email string) *Invitee {
	for i := range m.Invited {
		if m.Invited[i].Matches(executiveUID, email) {
			return &m.Invited[i]
		}
	}
	return nil
}

// HasAttendee reports whether the executive is a participant or appears in
// the invited list.
func (m *Meeting) HasAttendee(executiveUID, email string) bool {
	if m.HasParticipant(executiveUID) {
		return true
	}
	return m.FindInvitee(executiveUID, email) != nil
}

// HasParticipant reports whether the executive is in the effectively
// attending set.
func (m *Meeting) HasParticipant(executiveUID string) bool {
	for _, uid := range m.Participants {
		if uid == executiveUID {
			return true
		}
	}
	return false
}

// AddParticipant adds the executive to the participant set if absent.
func (m *Meeting) AddParticipant(executiveUID string) {
	if executiveUID == "" || m.HasParticipant(executiveUID) {
		return
	}
	m.Participants = append(m.Participants, executiveUID)
}

// AttendeeUIDs returns the union of the participant set and the invited
// entries with a resolved executive UID, participants first, deduplicated.
// Back-filled tasks are keyed on this union: an invitee who has not accepted
// yet still carries a task for the meeting.
func (m *Meeting) AttendeeUIDs() []string {
	uids := make([]string, 0, len(m.Participants)+len(m.Invited))
	seen := make(map[string]bool, len(m.Participants)+len(m.Invited))
	for _, uid := range m.Participants {
		if uid == "" || seen[uid] {
			continue
		}
		seen[uid] = true
		uids = append(uids, uid)
	}
	for _, invitee := range m.Invited {
		uid := invitee.ExecutiveUID
		if uid == "" || seen[uid] {
			continue
		}
		seen[uid] = true
		uids = append(uids, uid)
	}
	return uids
}

// RemoveParticipant drops the executive from the participant set if present.
func (m *Meeting) RemoveParticipant(executiveUID string) {
	for i, uid := range m.Participants {
		if uid == executiveUID {
			m.Participants = append(m.Participants[:i], m.Participants[i+1:]...)
			return
		}
	}
}

// RecomputeStatus derives the pending/scheduled state from the invited list:
// scheduled iff the list is non-empty and every entry has accepted. The
// recomputation is purely a function of the current invited list so a stale
// concurrent write self-corrects on the next RSVP. It never produces
// cancelled, completed or conflict; those are one-way transitions owned by
// their explicit operations, so the derivation only runs while the meeting is
// in the pending/scheduled pair.
func (m *Meeting) RecomputeStatus() {
	if m.Status != MeetingStatusPending && m.Status != MeetingStatusScheduled {
		return
	}
	if len(m.Invited) == 0 {
		m.Status = MeetingStatusPending
		return
	}
	for i := range m.Invited {
		if m.Invited[i].Status != InviteeStatusAccepted {
			m.Status = MeetingStatusPending
			return
		}
	}
	m.Status = MeetingStatusScheduled
}

// Tags generates a consistent set of tags for the meeting for searching/indexing.
func (m *Meeting) Tags() []string {
	tags := []string{}

	if m == nil {
		return nil
	}

	if m.UID != "" {
		tags = append(tags, m.UID)
		tags = append(tags, fmt.Sprintf("meeting_uid:%s", m.UID))
	}

	if m.Title != "" {
		tags = append(tags, fmt.Sprintf("title:%s", m.Title))
	}

	if m.Project != "" {
		tags = append(tags, fmt.Sprintf("project:%s", m.Project))
	}

	if m.CreatedBy != "" {
		tags = append(tags, fmt.Sprintf("created_by:%s", m.CreatedBy))
	}

	if m.Status != "" {
		tags = append(tags, fmt.Sprintf("status:%s", m.Status))
	}

	return tags
}
