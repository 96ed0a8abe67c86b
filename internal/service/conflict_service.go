// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/logging"
	"github.com/execdesk/scheduling-service/pkg/utils"
)

// AddProposalRequest is a secretary's alternate-slot proposal for an open or
// in-progress conflict ticket.
type AddProposalRequest struct {
	StartTime time.Time
	EndTime   time.Time
	Notes     string
}

// RecordConsultationRequest captures one executive's stance on a proposed
// resolution. ExecutiveUID takes precedence; Email is the fallback match key.
type RecordConsultationRequest struct {
	ExecutiveUID string
	Email        string
	Name         string
	Decision     models.ConsultationDecision
	Notes        string
}

// ResolveConflictRequest carries the final agreed interval and the
// secretary's resolution notes.
type ResolveConflictRequest struct {
	StartTime time.Time
	EndTime   time.Time
	Notes     string
}

// LogConflictRequest creates a standalone ticket not born from meeting
// creation.
type LogConflictRequest struct {
	MeetingUID        string
	ParticipantEmails []string
	ParticipantUIDs   []string
	Overlaps          []models.ExecutiveOverlap
	Notes             string
}

// ConflictService drives the conflict ticket lifecycle. Every state-changing
// operation appends exactly one history entry and persists the ticket with
// its revision, so a concurrent secretary loses cleanly instead of clobbering.
type ConflictService struct {
	conflictRepository  domain.ConflictRepository
	meetingRepository   domain.MeetingRepository
	executiveRepository domain.ExecutiveRepository
	notifier            domain.NotificationDispatcher
	messageBuilder      domain.MessageBuilder
}

// NewConflictService creates a new ConflictService.
func NewConflictService(
	conflictRepository domain.ConflictRepository,
	meetingRepository domain.MeetingRepository,
	executiveRepository domain.ExecutiveRepository,
	notifier domain.NotificationDispatcher,
	messageBuilder domain.MessageBuilder,
) *ConflictService {
	return &ConflictService{
		conflictRepository:  conflictRepository,
		meetingRepository:   meetingRepository,
		executiveRepository: executiveRepository,
		notifier:            notifier,
		messageBuilder:      messageBuilder,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ConflictService) ServiceReady() bool {
	return s.conflictRepository != nil &&
		s.meetingRepository != nil &&
		s.executiveRepository != nil &&
		s.notifier != nil &&
		s.messageBuilder != nil
}

// GetConflict retrieves one conflict ticket by UID.
func (s *ConflictService) GetConflict(ctx context.Context, conflictUID string) (*models.Conflict, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("conflict service is not ready")
	}
	return s.conflictRepository.Get(ctx, conflictUID)
}

// ListConflicts returns all conflict tickets, or only the non-terminal ones
// when openOnly is set.
func (s *ConflictService) ListConflicts(ctx context.Context, openOnly bool) ([]*models.Conflict, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("conflict service is not ready")
	}

	conflicts, err := s.conflictRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if !openOnly {
		return conflicts, nil
	}

	open := []*models.Conflict{}
	for _, conflict := range conflicts {
		if !conflict.IsTerminal() {
			open = append(open, conflict)
		}
	}
	return open, nil
}

// LogConflict creates a conflict ticket directly, outside the meeting
// creation flow.
func (s *ConflictService) LogConflict(ctx context.Context, req *LogConflictRequest, actorUID, actorRole string, now time.Time) (*models.Conflict, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("conflict service is not ready")
	}

	if len(req.ParticipantEmails) == 0 && len(req.ParticipantUIDs) == 0 {
		return nil, domain.NewValidationError("at least one participant is required")
	}
	if req.MeetingUID != "" {
		if exists, err := s.meetingRepository.Exists(ctx, req.MeetingUID); err != nil {
			return nil, err
		} else if !exists {
			return nil, domain.NewNotFoundError(fmt.Sprintf("meeting not found: %s", req.MeetingUID))
		}
	}

	conflict := &models.Conflict{
		UID:               uuid.New().String(),
		MeetingUID:        req.MeetingUID,
		RequestedBy:       actorUID,
		ParticipantEmails: req.ParticipantEmails,
		ParticipantUIDs:   req.ParticipantUIDs,
		Overlaps:          req.Overlaps,
		Status:            models.ConflictStageOpen,
		CreatedAt:         utils.TimePtr(now),
		UpdatedAt:         utils.TimePtr(now),
	}
	conflict.AppendHistory(models.HistoryConflictDetected,
		strings.TrimSpace(req.Notes), actorUID, actorRole, now)

	if err := s.conflictRepository.Create(ctx, conflict); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "conflict logged", "conflict_uid", conflict.UID)

	s.indexConflict(ctx, models.ActionCreated, conflict)

	return conflict, nil
}

// AddProposal appends an alternate slot to a non-terminal ticket. The first
// proposal moves an open ticket to in_progress.
func (s *ConflictService) AddProposal(ctx context.Context, conflictUID string, req *AddProposalRequest, actorUID, actorRole string, now time.Time) (*models.Conflict, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("conflict service is not ready")
	}

	if !models.NewTimeInterval(req.StartTime, req.EndTime).IsValid() {
		return nil, domain.NewValidationError("proposed end time must be after start time")
	}

	ctx = logging.AppendCtx(ctx, slog.String("conflict_uid", conflictUID))

	conflict, revision, err := s.conflictRepository.GetWithRevision(ctx, conflictUID)
	if err != nil {
		return nil, err
	}
	if conflict.IsTerminal() {
		return nil, domain.NewStateViolationError(
			fmt.Sprintf("conflict is %s and accepts no further proposals", conflict.Status))
	}

	conflict.ProposedOptions = append(conflict.ProposedOptions, models.ProposedOption{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		CreatedBy: actorUID,
		CreatedAt: now,
	})
	if conflict.Status == models.ConflictStageOpen {
		conflict.Status = models.ConflictStageInProgress
	}
	conflict.AppendHistory(models.HistoryProposalAdded,
		fmt.Sprintf("proposed %s to %s", req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339)),
		actorUID, actorRole, now)
	conflict.UpdatedAt = &now

	if err := s.conflictRepository.Update(ctx, conflict, revision); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "proposal added", "proposal_count", len(conflict.ProposedOptions))

	s.indexConflict(ctx, models.ActionUpdated, conflict)

	return conflict, nil
}

// RecordConsultation upserts one executive's decision on the ticket. Matched
// by executive UID first, email second. Does not change the ticket status.
func (s *ConflictService) RecordConsultation(ctx context.Context, conflictUID string, req *RecordConsultationRequest, actorUID, actorRole string, now time.Time) (*models.Conflict, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("conflict service is not ready")
	}

	if req.ExecutiveUID == "" && req.Email == "" {
		return nil, domain.NewValidationError("executive uid or email is required")
	}
	switch req.Decision {
	case models.ConsultationPending, models.ConsultationApproved, models.ConsultationDeclined:
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("invalid consultation decision: %s", req.Decision))
	}

	ctx = logging.AppendCtx(ctx, slog.String("conflict_uid", conflictUID))

	conflict, revision, err := s.conflictRepository.GetWithRevision(ctx, conflictUID)
	if err != nil {
		return nil, err
	}
	if conflict.IsTerminal() {
		return nil, domain.NewStateViolationError(
			fmt.Sprintf("conflict is %s and accepts no further consultations", conflict.Status))
	}

	updated := conflict.UpsertConsultation(models.Consultation{
		ExecutiveUID: req.ExecutiveUID,
		Email:        strings.ToLower(req.Email),
		Name:         utils.CoalesceString(req.Name, req.Email),
		Decision:     req.Decision,
		Notes:        req.Notes,
		RecordedBy:   actorUID,
		RecordedAt:   now,
	}, now)
	conflict.AppendHistory(models.HistoryConsultationRecorded,
		fmt.Sprintf("decision %s recorded", req.Decision), actorUID, actorRole, now)
	conflict.UpdatedAt = &now

	if err := s.conflictRepository.Update(ctx, conflict, revision); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "consultation recorded", "decision", string(req.Decision), "updated_existing", updated)

	s.indexConflict(ctx, models.ActionUpdated, conflict)

	return conflict, nil
}

// Resolve closes the ticket with a final interval and synchronizes the
// scheduling side: the linked meeting is moved to the agreed slot and reset
// to pending for fresh RSVPs, and every known participant's back-referenced
// task is rescheduled or appended. The meeting and task writes land before
// the ticket update, so a CAS loss on the ticket leaves the operation
// retryable.
func (s *ConflictService) Resolve(ctx context.Context, conflictUID string, req *ResolveConflictRequest, actorUID, actorRole string, now time.Time) (*models.Conflict, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("conflict service is not ready")
	}

	if !models.NewTimeInterval(req.StartTime, req.EndTime).IsValid() {
		return nil, domain.NewValidationError("resolution end time must be after start time")
	}

	ctx = logging.AppendCtx(ctx, slog.String("conflict_uid", conflictUID))

	conflict, revision, err := s.conflictRepository.GetWithRevision(ctx, conflictUID)
	if err != nil {
		return nil, err
	}
	if conflict.IsTerminal() {
		return nil, domain.NewStateViolationError(
			fmt.Sprintf("conflict is already %s", conflict.Status))
	}

	var meeting *models.Meeting
	if conflict.MeetingUID != "" {
		meeting, err = s.resolveMeeting(ctx, conflict, req, now)
		if err != nil {
			return nil, err
		}
		if err := s.rescheduleTasks(ctx, conflict.ParticipantUIDs, meeting, now); err != nil {
			return nil, err
		}
	}

	conflict.Status = models.ConflictStageResolved
	conflict.ResolutionNotes = req.Notes
	conflict.ResolvedBy = actorUID
	conflict.AppendHistory(models.HistoryConflictResolved, req.Notes, actorUID, actorRole, now)
	conflict.UpdatedAt = &now

	if err := s.conflictRepository.Update(ctx, conflict, revision); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "conflict resolved")

	if meeting != nil {
		if err := s.notifier.NotifyExecutives(ctx, meeting.Participants, domain.NotificationRequest{
			Title:       "Conflict resolved",
			Message:     fmt.Sprintf("meeting %q was rescheduled, please respond again", meeting.Title),
			Channel:     models.ChannelInApp,
			Severity:    models.SeverityInfo,
			MeetingUID:  meeting.UID,
			ConflictUID: conflict.UID,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to notify participants about resolution", logging.ErrKey, err)
		}
	}
	s.indexConflict(ctx, models.ActionUpdated, conflict)

	return conflict, nil
}

// resolveMeeting rewrites the linked meeting for the agreed interval: new
// times, status back to pending, participant set merged with the ticket's
// known executives, and every invitee reset to invited so acceptance is
// re-collected. The requester stays accepted and cancelled entries stay
// cancelled.
func (s *ConflictService) resolveMeeting(ctx context.Context, conflict *models.Conflict, req *ResolveConflictRequest, now time.Time) (*models.Meeting, error) {
	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, conflict.MeetingUID)
	if err != nil {
		return nil, err
	}

	meeting.StartTime = req.StartTime
	meeting.EndTime = req.EndTime
	meeting.Status = models.MeetingStatusPending
	meeting.HasConflict = false
	meeting.ConflictStatus = models.ConflictStageResolved
	meeting.ConflictNotes = req.Notes
	meeting.UpdatedAt = &now

	for _, participantUID := range conflict.ParticipantUIDs {
		meeting.AddParticipant(participantUID)
	}
	for i := range meeting.Invited {
		invitee := &meeting.Invited[i]
		switch {
		case invitee.Status == models.InviteeStatusCancelled:
		case invitee.ExecutiveUID != "" && invitee.ExecutiveUID == conflict.RequestedBy:
			invitee.Status = models.InviteeStatusAccepted
		default:
			invitee.Status = models.InviteeStatusInvited
		}
	}

	if err := s.meetingRepository.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}
	s.indexMeeting(ctx, meeting)

	return meeting, nil
}

// rescheduleTasks moves every participant's back-referenced task to the
// resolved interval, appending one where none exists yet.
func (s *ConflictService) rescheduleTasks(ctx context.Context, participantUIDs []string, meeting *models.Meeting, now time.Time) error {
	interval := meeting.Interval()
	for _, participantUID := range participantUIDs {
		executive, revision, err := s.executiveRepository.GetWithRevision(ctx, participantUID)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				slog.WarnContext(ctx, "skipping unknown participant during resolution",
					"executive_uid", participantUID)
				continue
			}
			return err
		}
		executive.RescheduleMeetingTask(uuid.New().String(), meeting.UID, meeting.Title, interval, now)
		if err := s.executiveRepository.Update(ctx, executive, revision); err != nil {
			return err
		}
	}
	return nil
}

// Escalate closes the ticket without a schedule change and mirrors the
// escalation onto the linked meeting.
func (s *ConflictService) Escalate(ctx context.Context, conflictUID, notes, actorUID, actorRole string, now time.Time) (*models.Conflict, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("conflict service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("conflict_uid", conflictUID))

	conflict, revision, err := s.conflictRepository.GetWithRevision(ctx, conflictUID)
	if err != nil {
		return nil, err
	}
	if conflict.IsTerminal() {
		return nil, domain.NewStateViolationError(
			fmt.Sprintf("conflict is already %s", conflict.Status))
	}

	if conflict.MeetingUID != "" {
		meeting, meetingRevision, err := s.meetingRepository.GetWithRevision(ctx, conflict.MeetingUID)
		if err != nil {
			return nil, err
		}
		meeting.ConflictStatus = models.ConflictStageEscalated
		meeting.UpdatedAt = &now
		if err := s.meetingRepository.Update(ctx, meeting, meetingRevision); err != nil {
			return nil, err
		}
		s.indexMeeting(ctx, meeting)
	}

	conflict.Status = models.ConflictStageEscalated
	conflict.AppendHistory(models.HistoryConflictEscalated, notes, actorUID, actorRole, now)
	conflict.UpdatedAt = &now

	if err := s.conflictRepository.Update(ctx, conflict, revision); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "conflict escalated")

	if err := s.notifier.NotifySecretaries(ctx, domain.NotificationRequest{
		Title:       "Conflict escalated",
		Message:     fmt.Sprintf("conflict %s requires attention outside the scheduling flow", conflict.UID),
		Channel:     models.ChannelInApp,
		Severity:    models.SeverityCritical,
		MeetingUID:  conflict.MeetingUID,
		ConflictUID: conflict.UID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to notify secretaries about escalation", logging.ErrKey, err)
	}
	if err := s.messageBuilder.SendConflictEscalated(ctx, models.ConflictEventMessage{
		ConflictUID: conflict.UID,
		MeetingUID:  conflict.MeetingUID,
		Status:      string(conflict.Status),
		RequestedBy: conflict.RequestedBy,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send conflict escalated event", logging.ErrKey, err)
	}
	s.indexConflict(ctx, models.ActionUpdated, conflict)

	return conflict, nil
}

func (s *ConflictService) indexConflict(ctx context.Context, action models.MessageAction, conflict *models.Conflict) {
	if err := s.messageBuilder.SendIndexConflict(ctx, action, *conflict); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for conflict",
			logging.ErrKey, err, "conflict_uid", conflict.UID)
	}
}

func (s *ConflictService) indexMeeting(ctx context.Context, meeting *models.Meeting) {
	if err := s.messageBuilder.SendIndexMeeting(ctx, models.ActionUpdated, *meeting); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for meeting",
			logging.ErrKey, err, "meeting_uid", meeting.UID)
	}
}
