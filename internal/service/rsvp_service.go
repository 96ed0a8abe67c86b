// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/internal/logging"
)

// RSVPService records invitee responses and keeps the meeting status and
// participant set derived from them.
type RSVPService struct {
	meetingRepository   domain.MeetingRepository
	executiveRepository domain.ExecutiveRepository
	messageBuilder      domain.MessageBuilder
}

// NewRSVPService creates a new RSVPService.
func NewRSVPService(
	meetingRepository domain.MeetingRepository,
	executiveRepository domain.ExecutiveRepository,
	messageBuilder domain.MessageBuilder,
) *RSVPService {
	return &RSVPService{
		meetingRepository:   meetingRepository,
		executiveRepository: executiveRepository,
		messageBuilder:      messageBuilder,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *RSVPService) ServiceReady() bool {
	return s.meetingRepository != nil &&
		s.executiveRepository != nil &&
		s.messageBuilder != nil
}

// inviteeStatusForResponse maps an RSVP response onto the invitee enum.
func inviteeStatusForResponse(response string) (models.InviteeStatus, error) {
	switch strings.ToLower(response) {
	case "accepted":
		return models.InviteeStatusAccepted, nil
	case "declined":
		return models.InviteeStatusDeclined, nil
	case "tentative":
		return models.InviteeStatusTentative, nil
	default:
		return "", domain.NewValidationError(fmt.Sprintf("invalid rsvp response: %s", response))
	}
}

// Respond records one executive's RSVP on a meeting. The invitee entry is
// matched by executive UID first, case-insensitive email second; a genuinely
// uninvited responder is appended as a new invitee. Accepted responses add
// the executive to the participant set, declined removes them, tentative
// leaves the set untouched. The meeting status is recomputed after every
// response and never reaches cancelled or completed this way.
func (s *RSVPService) Respond(ctx context.Context, meetingUID, executiveUID, response string, now time.Time) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("rsvp service is not ready")
	}

	status, err := inviteeStatusForResponse(response)
	if err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))
	ctx = logging.AppendCtx(ctx, slog.String("executive_uid", executiveUID))

	executive, err := s.executiveRepository.Get(ctx, executiveUID)
	if err != nil {
		return nil, err
	}

	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	if meeting.Status == models.MeetingStatusCancelled {
		return nil, domain.NewStateViolationError("meeting is cancelled and no longer accepts responses")
	}

	invitee := meeting.FindInvitee(executive.UID, executive.Email)
	if invitee == nil {
		meeting.Invited = append(meeting.Invited, models.Invitee{
			Email:        strings.ToLower(executive.Email),
			ExecutiveUID: executive.UID,
			Status:       status,
		})
	} else {
		invitee.Status = status
		if invitee.ExecutiveUID == "" {
			invitee.ExecutiveUID = executive.UID
		}
	}

	switch status {
	case models.InviteeStatusAccepted:
		meeting.AddParticipant(executive.UID)
	case models.InviteeStatusDeclined:
		meeting.RemoveParticipant(executive.UID)
	}

	meeting.RecomputeStatus()
	meeting.UpdatedAt = &now

	if err := s.meetingRepository.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "rsvp recorded",
		"response", string(status), "meeting_status", string(meeting.Status))

	if err := s.messageBuilder.SendIndexMeeting(ctx, models.ActionUpdated, *meeting); err != nil {
		slog.ErrorContext(ctx, "failed to send index message for meeting", logging.ErrKey, err)
	}
	if meeting.Status == models.MeetingStatusScheduled {
		if err := s.messageBuilder.SendMeetingScheduled(ctx, models.MeetingEventMessage{
			MeetingUID: meeting.UID,
			Title:      meeting.Title,
			StartTime:  meeting.StartTime,
			EndTime:    meeting.EndTime,
			Actor:      executive.UID,
			Recipients: meeting.Participants,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to send meeting scheduled event", logging.ErrKey, err)
		}
	}

	return meeting, nil
}
