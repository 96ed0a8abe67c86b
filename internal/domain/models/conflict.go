// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"strings"
	"time"
)

// ConflictItemType tags the two shapes a colliding calendar item can take.
type ConflictItemType string

const (
	ConflictItemTask    ConflictItemType = "task"
	ConflictItemMeeting ConflictItemType = "meeting"
)

// ConflictItem is the common projection of a colliding task or meeting. The
// title/start/end/status are denormalized so secretaries can review a ticket
// without re-fetching either aggregate.
type ConflictItem struct {
	Type      ConflictItemType `json:"type"`
	RefUID    string           `json:"ref_uid"`
	Title     string           `json:"title"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Notes     string           `json:"notes,omitempty"`
	Status    string           `json:"status,omitempty"`
}

// ExecutiveOverlap groups the colliding items of a single executive inside a
// conflict report.
type ExecutiveOverlap struct {
	ExecutiveUID string         `json:"executive_uid"`
	Email        string         `json:"email"`
	Items        []ConflictItem `json:"items"`
}

// ProposedOption is an alternate slot a secretary has put forward.
type ProposedOption struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ConsultationDecision is one executive's recorded answer during conflict
// negotiation.
type ConsultationDecision string

const (
	ConsultationPending  ConsultationDecision = "pending"
	ConsultationApproved ConsultationDecision = "approved"
	ConsultationDeclined ConsultationDecision = "declined"
)

// Consultation records one executive's stance on a proposed resolution.
type Consultation struct {
	ExecutiveUID string               `json:"executive_uid,omitempty"`
	Email        string               `json:"email,omitempty"`
	Name         string               `json:"name,omitempty"`
	Decision     ConsultationDecision `json:"decision"`
	Notes        string               `json:"notes,omitempty"`
	RecordedBy   string               `json:"recorded_by"`
	RecordedAt   time.Time            `json:"recorded_at"`
	UpdatedAt    *time.Time           `json:"updated_at,omitempty"`
}

// History actions appended by conflict lifecycle operations.
const (
	HistoryConflictDetected     = "conflict_detected"
	HistoryProposalAdded        = "proposal_added"
	HistoryConsultationRecorded = "consultation_recorded"
	HistoryConflictResolved     = "conflict_resolved"
	HistoryConflictEscalated    = "conflict_escalated"
)

// HistoryEntry is one line of the append-only conflict audit log.
type HistoryEntry struct {
	Action    string    `json:"action"`
	Notes     string    `json:"notes,omitempty"`
	Actor     string    `json:"actor"`
	ActorRole string    `json:"actor_role,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conflict is the durable ticket for a detected scheduling collision and its
// resolution workflow. It is created atomically with a meeting persisted in
// the conflict path, or standalone via manual logging.
type Conflict struct {
	UID               string             `json:"uid"`
	MeetingUID        string             `json:"meeting_uid,omitempty"`
	RequestedBy       string             `json:"requested_by"`
	ParticipantEmails []string           `json:"participant_emails,omitempty"`
	ParticipantUIDs   []string           `json:"participant_uids,omitempty"`
	Overlaps          []ExecutiveOverlap `json:"overlaps,omitempty"`
	Status            ConflictStage      `json:"status"`
	ProposedOptions   []ProposedOption   `json:"proposed_options,omitempty"`
	ResolutionNotes   string             `json:"resolution_notes,omitempty"`
	ResolvedBy        string             `json:"resolved_by,omitempty"`
	Consultations     []Consultation     `json:"consultations,omitempty"`
	History           []HistoryEntry     `json:"history,omitempty"`
	CreatedAt         *time.Time         `json:"created_at,omitempty"`
	UpdatedAt         *time.Time         `json:"updated_at,omitempty"`
}

// IsTerminal reports whether the ticket can accept further transitions.
// Resolved and escalated tickets are closed; a new collision needs a new
// ticket.
func (c *Conflict) IsTerminal() bool {
	return c.Status == ConflictStageResolved || c.Status == ConflictStageEscalated
}

// AppendHistory appends exactly one entry to the audit log. The log is
// append-only; no operation rewrites a prior entry.
func (c *Conflict) AppendHistory(action, notes, actor, actorRole string, at time.Time) {
	c.History = append(c.History, HistoryEntry{
		Action:    action,
		Notes:     notes,
		Actor:     actor,
		ActorRole: actorRole,
		Timestamp: at,
	})
}

// UpsertConsultation records one executive's decision, keeping at most one
// consultation per executive. Matching is by executive UID first, falling
// back to case-insensitive email. Returns true when an existing entry was
// updated rather than appended.
func (c *Conflict) UpsertConsultation(entry Consultation, at time.Time) bool {
	for i := range c.Consultations {
		existing := &c.Consultations[i]
		match := false
		if entry.ExecutiveUID != "" && existing.ExecutiveUID == entry.ExecutiveUID {
			match = true
		} else if entry.ExecutiveUID == "" && entry.Email != "" && strings.EqualFold(existing.Email, entry.Email) {
			match = true
		}
		if !match {
			continue
		}
		existing.Decision = entry.Decision
		existing.Notes = entry.Notes
		existing.RecordedBy = entry.RecordedBy
		if entry.Name != "" {
			existing.Name = entry.Name
		}
		if entry.Email != "" {
			existing.Email = entry.Email
		}
		existing.UpdatedAt = &at
		return true
	}
	entry.RecordedAt = at
	c.Consultations = append(c.Consultations, entry)
	return false
}

// Tags generates a consistent set of tags for the conflict for searching/indexing.
func (c *Conflict) Tags() []string {
	tags := []string{}

	if c == nil {
		return nil
	}

	if c.UID != "" {
		tags = append(tags, c.UID)
		tags = append(tags, fmt.Sprintf("conflict_uid:%s", c.UID))
	}

	if c.MeetingUID != "" {
		tags = append(tags, fmt.Sprintf("meeting_uid:%s", c.MeetingUID))
	}

	if c.RequestedBy != "" {
		tags = append(tags, fmt.Sprintf("requested_by:%s", c.RequestedBy))
	}

	if c.Status != "" {
		tags = append(tags, fmt.Sprintf("status:%s", c.Status))
	}

	return tags
}
