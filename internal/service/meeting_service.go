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

// CreateMeetingRequest is a validated meeting creation payload.
type CreateMeetingRequest struct {
	Title             string
	Description       string
	StartTime         time.Time
	EndTime           time.Time
	Venue             string
	Project           string
	CreatedBy         string
	ParticipantEmails []string
}

// TaskBackfill summarizes the clean-path task append for one executive.
type TaskBackfill struct {
	ExecutiveUID string `json:"executive_uid"`
	TaskUID      string `json:"task_uid"`
	Created      bool   `json:"created"`
}

// CreateMeetingResult is the orchestrator outcome: either a clean-path
// meeting with its task back-fill, or a conflicted meeting plus its ticket.
// The two are mutually exclusive.
type CreateMeetingResult struct {
	Meeting        *models.Meeting  `json:"meeting"`
	Conflict       *models.Conflict `json:"conflict,omitempty"`
	Tasks          []TaskBackfill   `json:"tasks,omitempty"`
	NotFoundEmails []string         `json:"not_found_emails,omitempty"`
}

// MeetingService orchestrates meeting creation, cancellation and completion.
type MeetingService struct {
	meetingRepository   domain.MeetingRepository
	executiveRepository domain.ExecutiveRepository
	conflictRepository  domain.ConflictRepository
	reportBuilder       *ConflictReportBuilder
	notifier            domain.NotificationDispatcher
	messageBuilder      domain.MessageBuilder
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(
	meetingRepository domain.MeetingRepository,
	executiveRepository domain.ExecutiveRepository,
	conflictRepository domain.ConflictRepository,
	reportBuilder *ConflictReportBuilder,
	notifier domain.NotificationDispatcher,
	messageBuilder domain.MessageBuilder,
) *MeetingService {
	return &MeetingService{
		meetingRepository:   meetingRepository,
		executiveRepository: executiveRepository,
		conflictRepository:  conflictRepository,
		reportBuilder:       reportBuilder,
		notifier:            notifier,
		messageBuilder:      messageBuilder,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *MeetingService) ServiceReady() bool {
	return s.meetingRepository != nil &&
		s.executiveRepository != nil &&
		s.conflictRepository != nil &&
		s.reportBuilder != nil &&
		s.notifier != nil &&
		s.messageBuilder != nil
}

// validateCreateMeeting fails fast before any write happens.
func validateCreateMeeting(req *CreateMeetingRequest) ([]string, error) {
	if req.Title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, domain.NewValidationError("start and end times are required")
	}
	if !models.NewTimeInterval(req.StartTime, req.EndTime).IsValid() {
		return nil, domain.NewValidationError("end time must be after start time")
	}
	if req.CreatedBy == "" {
		return nil, domain.NewValidationError("created_by is required")
	}

	// Deduplicate and lower-case participant emails, preserving order.
	seen := make(map[string]bool)
	emails := []string{}
	for _, email := range req.ParticipantEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		emails = append(emails, email)
	}
	if len(emails) == 0 {
		return nil, domain.NewValidationError("at least one participant email is required")
	}

	return emails, nil
}

// CreateMeeting validates the request, detects scheduling overlaps for every
// resolved invitee and branches into the clean path (meeting persisted plus
// idempotent per-executive task back-fill) or the conflict path (pending
// meeting plus an open conflict ticket routed to the secretaries). The
// notification fan-outs are best-effort: a failed dispatch never rolls back
// the meeting or the ticket.
func (s *MeetingService) CreateMeeting(ctx context.Context, req *CreateMeetingRequest) (*CreateMeetingResult, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	emails, err := validateCreateMeeting(req)
	if err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("created_by", req.CreatedBy))

	creator, err := s.executiveRepository.Get(ctx, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	// Resolve invited emails to executive records, best-effort: unmatched
	// emails stay on the invite by email only and are reported back.
	resolved := []*models.Executive{creator}
	seenUID := map[string]bool{creator.UID: true}
	invited := []models.Invitee{{
		Email:        strings.ToLower(creator.Email),
		ExecutiveUID: creator.UID,
		Status:       models.InviteeStatusAccepted,
	}}
	notFoundEmails := []string{}

	for _, email := range emails {
		if strings.EqualFold(email, creator.Email) {
			continue
		}
		executive, err := s.executiveRepository.GetByEmail(ctx, email)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				notFoundEmails = append(notFoundEmails, email)
				invited = append(invited, models.Invitee{Email: email, Status: models.InviteeStatusInvited})
				continue
			}
			return nil, err
		}
		if seenUID[executive.UID] {
			continue
		}
		seenUID[executive.UID] = true
		resolved = append(resolved, executive)
		invited = append(invited, models.Invitee{
			Email:        email,
			ExecutiveUID: executive.UID,
			Status:       models.InviteeStatusInvited,
		})
	}

	candidate := models.NewTimeInterval(req.StartTime, req.EndTime)
	report, err := s.reportBuilder.Build(ctx, resolved, candidate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	meeting := &models.Meeting{
		UID:          uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Venue:        req.Venue,
		Project:      req.Project,
		CreatedBy:    creator.UID,
		Participants: []string{creator.UID},
		Invited:      invited,
		CreatedAt:    utils.TimePtr(now),
		UpdatedAt:    utils.TimePtr(now),
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meeting.UID))

	if len(report) > 0 {
		return s.createConflictedMeeting(ctx, meeting, report, resolved, emails, notFoundEmails, now)
	}

	return s.createCleanMeeting(ctx, meeting, resolved, notFoundEmails, now)
}

// createConflictedMeeting persists the meeting parked behind a new open
// conflict ticket and routes the ticket to the secretaries. No tasks are
// created on this branch.
func (s *MeetingService) createConflictedMeeting(
	ctx context.Context,
	meeting *models.Meeting,
	report []models.ExecutiveOverlap,
	resolved []*models.Executive,
	emails []string,
	notFoundEmails []string,
	now time.Time,
) (*CreateMeetingResult, error) {
	meeting.Status = models.MeetingStatusConflict
	meeting.HasConflict = true
	meeting.ConflictStatus = models.ConflictStageOpen

	if err := s.meetingRepository.Create(ctx, meeting); err != nil {
		return nil, err
	}

	participantUIDs := make([]string, 0, len(resolved))
	for _, executive := range resolved {
		participantUIDs = append(participantUIDs, executive.UID)
	}

	conflict := &models.Conflict{
		UID:               uuid.New().String(),
		MeetingUID:        meeting.UID,
		RequestedBy:       meeting.CreatedBy,
		ParticipantEmails: emails,
		ParticipantUIDs:   participantUIDs,
		Overlaps:          report,
		Status:            models.ConflictStageOpen,
		CreatedAt:         utils.TimePtr(now),
		UpdatedAt:         utils.TimePtr(now),
	}
	conflict.AppendHistory(models.HistoryConflictDetected,
		fmt.Sprintf("scheduling conflict detected for %d executive(s)", len(report)),
		meeting.CreatedBy, string(models.RoleExecutive), now)

	if err := s.conflictRepository.Create(ctx, conflict); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "meeting created with conflict",
		"conflict_uid", conflict.UID, "overlap_count", len(report))

	// Best-effort side effects: secretaries are notified and the documents
	// indexed, but a failure here must not fail the creation.
	if err := s.notifier.NotifySecretaries(ctx, domain.NotificationRequest{
		Title:       "Scheduling conflict detected",
		Message:     fmt.Sprintf("meeting %q needs manual resolution", meeting.Title),
		Channel:     models.ChannelInApp,
		Severity:    models.SeverityWarning,
		MeetingUID:  meeting.UID,
		ConflictUID: conflict.UID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to notify secretaries about conflict", logging.ErrKey, err)
	}
	if err := s.messageBuilder.SendConflictDetected(ctx, models.ConflictEventMessage{
		ConflictUID: conflict.UID,
		MeetingUID:  meeting.UID,
		Status:      string(conflict.Status),
		RequestedBy: conflict.RequestedBy,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send conflict detected event", logging.ErrKey, err)
	}
	s.indexMeeting(ctx, models.ActionCreated, meeting)
	s.indexConflict(ctx, models.ActionCreated, conflict)

	return &CreateMeetingResult{
		Meeting:        meeting,
		Conflict:       conflict,
		NotFoundEmails: notFoundEmails,
	}, nil
}

// createCleanMeeting persists the meeting as pending and idempotently
// back-fills one task per resolved executive.
func (s *MeetingService) createCleanMeeting(
	ctx context.Context,
	meeting *models.Meeting,
	resolved []*models.Executive,
	notFoundEmails []string,
	now time.Time,
) (*CreateMeetingResult, error) {
	meeting.Status = models.MeetingStatusPending

	if err := s.meetingRepository.Create(ctx, meeting); err != nil {
		return nil, err
	}

	backfills := make([]TaskBackfill, 0, len(resolved))
	for _, executive := range resolved {
		backfill, err := s.backfillTask(ctx, executive.UID, meeting, now)
		if err != nil {
			return nil, err
		}
		backfills = append(backfills, backfill)
	}

	slog.InfoContext(ctx, "meeting created", "task_count", len(backfills))

	participantUIDs := make([]string, 0, len(resolved))
	for _, executive := range resolved {
		participantUIDs = append(participantUIDs, executive.UID)
	}
	if err := s.notifier.NotifyExecutives(ctx, participantUIDs, domain.NotificationRequest{
		Title:      "Meeting invitation",
		Message:    fmt.Sprintf("you have been invited to %q", meeting.Title),
		Channel:    models.ChannelInApp,
		Severity:   models.SeverityInfo,
		MeetingUID: meeting.UID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to notify meeting participants", logging.ErrKey, err)
	}
	if err := s.messageBuilder.SendMeetingScheduled(ctx, models.MeetingEventMessage{
		MeetingUID: meeting.UID,
		Title:      meeting.Title,
		StartTime:  meeting.StartTime,
		EndTime:    meeting.EndTime,
		Actor:      meeting.CreatedBy,
		Recipients: participantUIDs,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send meeting scheduled event", logging.ErrKey, err)
	}
	s.indexMeeting(ctx, models.ActionCreated, meeting)

	return &CreateMeetingResult{
		Meeting:        meeting,
		Tasks:          backfills,
		NotFoundEmails: notFoundEmails,
	}, nil
}

// backfillTask appends a task back-referencing the meeting to the
// executive's calendar. The append is a no-op when a task for the meeting
// already exists.
func (s *MeetingService) backfillTask(ctx context.Context, executiveUID string, meeting *models.Meeting, now time.Time) (TaskBackfill, error) {
	executive, revision, err := s.executiveRepository.GetWithRevision(ctx, executiveUID)
	if err != nil {
		return TaskBackfill{}, err
	}

	task := models.Task{
		UID:        uuid.New().String(),
		Title:      meeting.Title,
		StartTime:  meeting.StartTime,
		EndTime:    meeting.EndTime,
		MeetingUID: meeting.UID,
		Status:     models.TaskStatusScheduled,
		CreatedAt:  utils.TimePtr(now),
		UpdatedAt:  utils.TimePtr(now),
	}

	if !executive.AppendMeetingTask(task) {
		existing := executive.FindTaskByMeeting(meeting.UID)
		return TaskBackfill{ExecutiveUID: executiveUID, TaskUID: existing.UID, Created: false}, nil
	}

	if err := s.executiveRepository.Update(ctx, executive, revision); err != nil {
		return TaskBackfill{}, err
	}

	return TaskBackfill{ExecutiveUID: executiveUID, TaskUID: task.UID, Created: true}, nil
}

// GetMeeting retrieves one meeting by UID.
func (s *MeetingService) GetMeeting(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}
	return s.meetingRepository.Get(ctx, meetingUID)
}

// ListMeetings returns every meeting.
func (s *MeetingService) ListMeetings(ctx context.Context) ([]*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}
	return s.meetingRepository.ListAll(ctx)
}

// CancelMeeting cancels a meeting. Creator-only, idempotent: cancelling an
// already-cancelled meeting returns the current state unchanged. The
// cancellation is mirrored onto every invitee entry and, best-effort, onto
// every participant's back-referenced task.
func (s *MeetingService) CancelMeeting(ctx context.Context, meetingUID, actorUID string, now time.Time) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	if !meeting.IsCreator(actorUID) {
		return nil, domain.NewStateViolationError("only the meeting creator can cancel the meeting")
	}

	if meeting.Status == models.MeetingStatusCancelled {
		return meeting, nil
	}

	meeting.Status = models.MeetingStatusCancelled
	meeting.CancelledAt = &now
	meeting.CancelledBy = actorUID
	meeting.UpdatedAt = &now
	for i := range meeting.Invited {
		meeting.Invited[i].Status = models.InviteeStatusCancelled
	}

	if err := s.meetingRepository.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}

	// Mirror the cancellation onto back-referenced tasks. The clean path
	// back-fills a task for every resolved invitee, not just accepted
	// participants, so the mirror walks the same union. Best-effort: a
	// failed task update is logged and does not undo the cancellation.
	for _, attendeeUID := range meeting.AttendeeUIDs() {
		executive, execRevision, err := s.executiveRepository.GetWithRevision(ctx, attendeeUID)
		if err != nil {
			slog.WarnContext(ctx, "failed to load attendee for task cancellation",
				logging.ErrKey, err, "executive_uid", attendeeUID)
			continue
		}
		if !executive.CancelMeetingTask(meetingUID, now) {
			continue
		}
		if err := s.executiveRepository.Update(ctx, executive, execRevision); err != nil {
			slog.WarnContext(ctx, "failed to cancel attendee task",
				logging.ErrKey, err, "executive_uid", attendeeUID)
		}
	}

	if err := s.notifier.NotifyExecutives(ctx, meeting.Participants, domain.NotificationRequest{
		Title:      "Meeting cancelled",
		Message:    fmt.Sprintf("meeting %q was cancelled", meeting.Title),
		Channel:    models.ChannelInApp,
		Severity:   models.SeverityInfo,
		MeetingUID: meeting.UID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to notify participants about cancellation", logging.ErrKey, err)
	}
	if err := s.messageBuilder.SendMeetingCancelled(ctx, models.MeetingEventMessage{
		MeetingUID: meeting.UID,
		Title:      meeting.Title,
		StartTime:  meeting.StartTime,
		EndTime:    meeting.EndTime,
		Actor:      actorUID,
		Recipients: meeting.Participants,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send meeting cancelled event", logging.ErrKey, err)
	}
	s.indexMeeting(ctx, models.ActionUpdated, meeting)

	slog.InfoContext(ctx, "meeting cancelled")

	return meeting, nil
}

// CompleteMeeting marks a meeting completed. Creator-only, and only legal
// once the meeting end time has passed. The current time is threaded in as a
// parameter so the gate stays testable without clock mocking.
func (s *MeetingService) CompleteMeeting(ctx context.Context, meetingUID, actorUID string, now time.Time) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service is not ready")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	if !meeting.IsCreator(actorUID) {
		return nil, domain.NewStateViolationError("only the meeting creator can complete the meeting")
	}
	if meeting.Status == models.MeetingStatusCancelled {
		return nil, domain.NewStateViolationError("a cancelled meeting cannot be completed")
	}
	if meeting.Status == models.MeetingStatusCompleted {
		return meeting, nil
	}
	if now.Before(meeting.EndTime) {
		return nil, domain.NewStateViolationError("meeting cannot be completed before its end time")
	}

	meeting.Status = models.MeetingStatusCompleted
	meeting.CompletedAt = &now
	meeting.UpdatedAt = &now

	if err := s.meetingRepository.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}

	s.indexMeeting(ctx, models.ActionUpdated, meeting)

	slog.InfoContext(ctx, "meeting completed")

	return meeting, nil
}

// indexMeeting publishes a meeting index message, logging failures instead
// of surfacing them.
func (s *MeetingService) indexMeeting(ctx context.Context, action models.MessageAction, meeting *models.Meeting) {
	if err := s.messageBuilder.SendIndexMeeting(ctx, action, *meeting); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for meeting",
			logging.ErrKey, err, "meeting_uid", meeting.UID)
	}
}

// indexConflict publishes a conflict index message, logging failures instead
// of surfacing them.
func (s *MeetingService) indexConflict(ctx context.Context, action models.MessageAction, conflict *models.Conflict) {
	if err := s.messageBuilder.SendIndexConflict(ctx, action, *conflict); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for conflict",
			logging.ErrKey, err, "conflict_uid", conflict.UID)
	}
}
