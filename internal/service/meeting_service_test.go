// Copyright ExecDesk and its contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/execdesk/scheduling-service/internal/domain"
	"github.com/execdesk/scheduling-service/internal/domain/mocks"
	"github.com/execdesk/scheduling-service/internal/domain/models"
	"github.com/execdesk/scheduling-service/pkg/utils"
)

func day(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

type meetingServiceMocks struct {
	meetingRepo   *mocks.MockMeetingRepository
	executiveRepo *mocks.MockExecutiveRepository
	conflictRepo  *mocks.MockConflictRepository
	notifier      *mocks.MockNotificationDispatcher
	builder       *mocks.MockMessageBuilder
}

func newMeetingService() (*MeetingService, *meetingServiceMocks) {
	m := &meetingServiceMocks{
		meetingRepo:   &mocks.MockMeetingRepository{},
		executiveRepo: &mocks.MockExecutiveRepository{},
		conflictRepo:  &mocks.MockConflictRepository{},
		notifier:      &mocks.MockNotificationDispatcher{},
		builder:       &mocks.MockMessageBuilder{},
	}
	svc := NewMeetingService(
		m.meetingRepo,
		m.executiveRepo,
		m.conflictRepo,
		NewConflictReportBuilder(m.meetingRepo),
		m.notifier,
		m.builder,
	)
	return svc, m
}

func TestCreateMeeting_Validation(t *testing.T) {
	svc, _ := newMeetingService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *CreateMeetingRequest
	}{
		{
			name: "missing title",
			req: &CreateMeetingRequest{
				StartTime: day(14, 0), EndTime: day(15, 0),
				CreatedBy: "exec-1", ParticipantEmails: []string{"a@example.com"},
			},
		},
		{
			name: "inverted interval",
			req: &CreateMeetingRequest{
				Title: "Sync", StartTime: day(15, 0), EndTime: day(14, 0),
				CreatedBy: "exec-1", ParticipantEmails: []string{"a@example.com"},
			},
		},
		{
			name: "zero-length interval",
			req: &CreateMeetingRequest{
				Title: "Sync", StartTime: day(14, 0), EndTime: day(14, 0),
				CreatedBy: "exec-1", ParticipantEmails: []string{"a@example.com"},
			},
		},
		{
			name: "no participants",
			req: &CreateMeetingRequest{
				Title: "Sync", StartTime: day(14, 0), EndTime: day(15, 0),
				CreatedBy: "exec-1",
			},
		},
		{
			name: "missing creator",
			req: &CreateMeetingRequest{
				Title: "Sync", StartTime: day(14, 0), EndTime: day(15, 0),
				ParticipantEmails: []string{"a@example.com"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.CreateMeeting(ctx, tt.req)
			assert.Nil(t, result)
			assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
		})
	}
}

func TestCreateMeeting_CleanPath(t *testing.T) {
	svc, m := newMeetingService()
	ctx := context.Background()

	creator := &models.Executive{UID: "exec-1", Name: "Alice", Email: "alice@example.com"}
	invitee := &models.Executive{UID: "exec-2", Name: "Bob", Email: "bob@example.com"}

	m.executiveRepo.On("Get", mock.Anything, "exec-1").Return(creator, nil)
	m.executiveRepo.On("GetByEmail", mock.Anything, "bob@example.com").Return(invitee, nil)
	m.meetingRepo.On("ListAll", mock.Anything).Return([]*models.Meeting{}, nil)
	m.meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Meeting")).Return(nil)
	m.executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(creator, uint64(1), nil)
	m.executiveRepo.On("GetWithRevision", mock.Anything, "exec-2").Return(invitee, uint64(3), nil)
	m.executiveRepo.On("Update", mock.Anything, creator, uint64(1)).Return(nil)
	m.executiveRepo.On("Update", mock.Anything, invitee, uint64(3)).Return(nil)
	m.notifier.On("NotifyExecutives", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.builder.On("SendMeetingScheduled", mock.Anything, mock.Anything).Return(nil)
	m.builder.On("SendIndexMeeting", mock.Anything, models.ActionCreated, mock.Anything).Return(nil)

	result, err := svc.CreateMeeting(ctx, &CreateMeetingRequest{
		Title:             "Quarterly review",
		StartTime:         day(14, 0),
		EndTime:           day(15, 0),
		CreatedBy:         "exec-1",
		ParticipantEmails: []string{"bob@example.com"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	// Clean path: no conflict ticket and exactly one task per resolved
	// executive.
	assert.Nil(t, result.Conflict)
	assert.Len(t, result.Tasks, 2)
	assert.Equal(t, models.MeetingStatusPending, result.Meeting.Status)
	assert.False(t, result.Meeting.HasConflict)
	assert.Empty(t, result.NotFoundEmails)

	// The creator is normalized into the invited list as pre-accepted.
	require.Len(t, result.Meeting.Invited, 2)
	assert.Equal(t, models.InviteeStatusAccepted, result.Meeting.Invited[0].Status)
	assert.Equal(t, models.InviteeStatusInvited, result.Meeting.Invited[1].Status)

	// Each executive received a back-referenced task.
	require.Len(t, creator.Tasks, 1)
	assert.Equal(t, result.Meeting.UID, creator.Tasks[0].MeetingUID)
	require.Len(t, invitee.Tasks, 1)
	assert.Equal(t, result.Meeting.UID, invitee.Tasks[0].MeetingUID)

	m.conflictRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMeeting_ConflictPath(t *testing.T) {
	svc, m := newMeetingService()
	ctx := context.Background()

	// Invitee has a 14:00-15:00 task; the 14:30-15:30 candidate collides.
	creator := &models.Executive{UID: "exec-1", Email: "alice@example.com"}
	invitee := &models.Executive{
		UID: "exec-2", Email: "bob@example.com",
		Tasks: []models.Task{
			{UID: "task-1", Title: "Prep", StartTime: day(14, 0), EndTime: day(15, 0), Status: models.TaskStatusScheduled},
		},
	}

	m.executiveRepo.On("Get", mock.Anything, "exec-1").Return(creator, nil)
	m.executiveRepo.On("GetByEmail", mock.Anything, "bob@example.com").Return(invitee, nil)
	m.meetingRepo.On("ListAll", mock.Anything).Return([]*models.Meeting{}, nil)
	m.meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Meeting")).Return(nil)
	m.conflictRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Conflict")).Return(nil)
	m.notifier.On("NotifySecretaries", mock.Anything, mock.Anything).Return(nil)
	m.builder.On("SendConflictDetected", mock.Anything, mock.Anything).Return(nil)
	m.builder.On("SendIndexMeeting", mock.Anything, models.ActionCreated, mock.Anything).Return(nil)
	m.builder.On("SendIndexConflict", mock.Anything, models.ActionCreated, mock.Anything).Return(nil)

	result, err := svc.CreateMeeting(ctx, &CreateMeetingRequest{
		Title:             "Strategy session",
		StartTime:         day(14, 30),
		EndTime:           day(15, 30),
		CreatedBy:         "exec-1",
		ParticipantEmails: []string{"bob@example.com"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	// Conflict path: ticket created, zero tasks appended.
	require.NotNil(t, result.Conflict)
	assert.Empty(t, result.Tasks)
	assert.Equal(t, models.MeetingStatusConflict, result.Meeting.Status)
	assert.True(t, result.Meeting.HasConflict)
	assert.Equal(t, models.ConflictStageOpen, result.Meeting.ConflictStatus)
	assert.Empty(t, creator.Tasks)
	assert.Len(t, invitee.Tasks, 1)

	assert.Equal(t, result.Meeting.UID, result.Conflict.MeetingUID)
	assert.Equal(t, models.ConflictStageOpen, result.Conflict.Status)
	require.Len(t, result.Conflict.Overlaps, 1)
	assert.Equal(t, "exec-2", result.Conflict.Overlaps[0].ExecutiveUID)
	require.Len(t, result.Conflict.History, 1)
	assert.Equal(t, models.HistoryConflictDetected, result.Conflict.History[0].Action)

	m.executiveRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	m.notifier.AssertCalled(t, "NotifySecretaries", mock.Anything, mock.Anything)
}

func TestCreateMeeting_TouchingIntervalIsNotConflict(t *testing.T) {
	svc, m := newMeetingService()
	ctx := context.Background()

	// Task ends exactly when the candidate starts; boundary touch is free.
	creator := &models.Executive{
		UID: "exec-1", Email: "alice@example.com",
		Tasks: []models.Task{
			{UID: "task-1", StartTime: day(14, 0), EndTime: day(15, 0), Status: models.TaskStatusScheduled},
		},
	}

	m.executiveRepo.On("Get", mock.Anything, "exec-1").Return(creator, nil)
	m.meetingRepo.On("ListAll", mock.Anything).Return([]*models.Meeting{}, nil)
	m.meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Meeting")).Return(nil)
	m.executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(creator, uint64(1), nil)
	m.executiveRepo.On("Update", mock.Anything, creator, uint64(1)).Return(nil)
	m.notifier.On("NotifyExecutives", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.builder.On("SendMeetingScheduled", mock.Anything, mock.Anything).Return(nil)
	m.builder.On("SendIndexMeeting", mock.Anything, models.ActionCreated, mock.Anything).Return(nil)

	result, err := svc.CreateMeeting(ctx, &CreateMeetingRequest{
		Title:             "Follow-up",
		StartTime:         day(15, 0),
		EndTime:           day(15, 30),
		CreatedBy:         "exec-1",
		ParticipantEmails: []string{"alice@example.com"},
	})
	require.NoError(t, err)

	assert.Nil(t, result.Conflict)
	assert.Equal(t, models.MeetingStatusPending, result.Meeting.Status)
	require.Len(t, result.Tasks, 1)
	assert.True(t, result.Tasks[0].Created)
	assert.Len(t, creator.Tasks, 2)
}

func TestCreateMeeting_UnknownEmailReported(t *testing.T) {
	svc, m := newMeetingService()
	ctx := context.Background()

	creator := &models.Executive{UID: "exec-1", Email: "alice@example.com"}

	m.executiveRepo.On("Get", mock.Anything, "exec-1").Return(creator, nil)
	m.executiveRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domain.NewNotFoundError("executive not found"))
	m.meetingRepo.On("ListAll", mock.Anything).Return([]*models.Meeting{}, nil)
	m.meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Meeting")).Return(nil)
	m.executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(creator, uint64(1), nil)
	m.executiveRepo.On("Update", mock.Anything, creator, uint64(1)).Return(nil)
	m.notifier.On("NotifyExecutives", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.builder.On("SendMeetingScheduled", mock.Anything, mock.Anything).Return(nil)
	m.builder.On("SendIndexMeeting", mock.Anything, models.ActionCreated, mock.Anything).Return(nil)

	result, err := svc.CreateMeeting(ctx, &CreateMeetingRequest{
		Title:             "Kickoff",
		StartTime:         day(9, 0),
		EndTime:           day(10, 0),
		CreatedBy:         "exec-1",
		ParticipantEmails: []string{"ghost@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ghost@example.com"}, result.NotFoundEmails)
	// Unmatched emails stay invited by email only.
	require.Len(t, result.Meeting.Invited, 2)
	assert.Equal(t, "ghost@example.com", result.Meeting.Invited[1].Email)
	assert.Empty(t, result.Meeting.Invited[1].ExecutiveUID)
	// Only the creator got a task.
	assert.Len(t, result.Tasks, 1)
}

func TestCreateMeeting_IdempotentBackfill(t *testing.T) {
	svc, m := newMeetingService()
	ctx := context.Background()

	meeting := &models.Meeting{UID: "meeting-1", Title: "Sync"}
	creator := &models.Executive{
		UID: "exec-1", Email: "alice@example.com",
		Tasks: []models.Task{
			{UID: "task-existing", MeetingUID: "meeting-1", Status: models.TaskStatusScheduled},
		},
	}
	m.executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(creator, uint64(5), nil)

	backfill, err := svc.backfillTask(ctx, "exec-1", meeting, time.Now())
	require.NoError(t, err)

	assert.False(t, backfill.Created)
	assert.Equal(t, "task-existing", backfill.TaskUID)
	assert.Len(t, creator.Tasks, 1)
	m.executiveRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelMeeting(t *testing.T) {
	now := day(16, 0)

	t.Run("creator cancels", func(t *testing.T) {
		svc, m := newMeetingService()
		meeting := &models.Meeting{
			UID: "meeting-1", Title: "Sync", CreatedBy: "exec-1",
			Status:       models.MeetingStatusScheduled,
			Participants: []string{"exec-1"},
			Invited: []models.Invitee{
				{Email: "alice@example.com", ExecutiveUID: "exec-1", Status: models.InviteeStatusAccepted},
			},
		}
		creator := &models.Executive{
			UID: "exec-1", Email: "alice@example.com",
			Tasks: []models.Task{{UID: "task-1", MeetingUID: "meeting-1", Status: models.TaskStatusScheduled}},
		}

		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(4), nil)
		m.meetingRepo.On("Update", mock.Anything, meeting, uint64(4)).Return(nil)
		m.executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(creator, uint64(2), nil)
		m.executiveRepo.On("Update", mock.Anything, creator, uint64(2)).Return(nil)
		m.notifier.On("NotifyExecutives", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.builder.On("SendMeetingCancelled", mock.Anything, mock.Anything).Return(nil)
		m.builder.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil)

		result, err := svc.CancelMeeting(context.Background(), "meeting-1", "exec-1", now)
		require.NoError(t, err)

		assert.Equal(t, models.MeetingStatusCancelled, result.Status)
		assert.Equal(t, "exec-1", result.CancelledBy)
		require.NotNil(t, result.CancelledAt)
		assert.Equal(t, now, utils.TimeValue(result.CancelledAt))
		assert.Equal(t, models.InviteeStatusCancelled, result.Invited[0].Status)
		// The back-referenced task was mirrored.
		assert.Equal(t, models.TaskStatusCancelled, creator.Tasks[0].Status)
	})

	t.Run("mirrors tasks of invitees who have not accepted", func(t *testing.T) {
		svc, m := newMeetingService()
		// The clean path back-fills a task for every resolved invitee, so
		// bob has one even though he never accepted and is not a participant.
		meeting := &models.Meeting{
			UID: "meeting-1", Title: "Sync", CreatedBy: "exec-1",
			Status:       models.MeetingStatusPending,
			Participants: []string{"exec-1"},
			Invited: []models.Invitee{
				{Email: "alice@example.com", ExecutiveUID: "exec-1", Status: models.InviteeStatusAccepted},
				{Email: "bob@example.com", ExecutiveUID: "exec-2", Status: models.InviteeStatusInvited},
			},
		}
		creator := &models.Executive{
			UID: "exec-1", Email: "alice@example.com",
			Tasks: []models.Task{{UID: "task-1", MeetingUID: "meeting-1", Status: models.TaskStatusScheduled}},
		}
		invitee := &models.Executive{
			UID: "exec-2", Email: "bob@example.com",
			Tasks: []models.Task{{UID: "task-2", MeetingUID: "meeting-1", Status: models.TaskStatusScheduled}},
		}

		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(4), nil)
		m.meetingRepo.On("Update", mock.Anything, meeting, uint64(4)).Return(nil)
		m.executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(creator, uint64(2), nil)
		m.executiveRepo.On("GetWithRevision", mock.Anything, "exec-2").Return(invitee, uint64(3), nil)
		m.executiveRepo.On("Update", mock.Anything, creator, uint64(2)).Return(nil)
		m.executiveRepo.On("Update", mock.Anything, invitee, uint64(3)).Return(nil)
		m.notifier.On("NotifyExecutives", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.builder.On("SendMeetingCancelled", mock.Anything, mock.Anything).Return(nil)
		m.builder.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil)

		_, err := svc.CancelMeeting(context.Background(), "meeting-1", "exec-1", now)
		require.NoError(t, err)

		assert.Equal(t, models.TaskStatusCancelled, creator.Tasks[0].Status)
		assert.Equal(t, models.TaskStatusCancelled, invitee.Tasks[0].Status)
		m.executiveRepo.AssertCalled(t, "Update", mock.Anything, invitee, uint64(3))
	})

	t.Run("non-creator is rejected", func(t *testing.T) {
		svc, m := newMeetingService()
		meeting := &models.Meeting{UID: "meeting-1", CreatedBy: "exec-1", Status: models.MeetingStatusScheduled}
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(4), nil)

		_, err := svc.CancelMeeting(context.Background(), "meeting-1", "exec-2", now)
		assert.Equal(t, domain.ErrorTypeStateViolation, domain.GetErrorType(err))
		m.meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		svc, m := newMeetingService()
		meeting := &models.Meeting{UID: "meeting-1", CreatedBy: "exec-1", Status: models.MeetingStatusCancelled}
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(4), nil)

		result, err := svc.CancelMeeting(context.Background(), "meeting-1", "exec-1", now)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusCancelled, result.Status)
		m.meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCompleteMeeting(t *testing.T) {
	t.Run("before end time is rejected, after succeeds", func(t *testing.T) {
		svc, m := newMeetingService()
		meeting := &models.Meeting{
			UID: "meeting-1", CreatedBy: "exec-1",
			StartTime: day(14, 0), EndTime: day(15, 0),
			Status: models.MeetingStatusScheduled,
		}
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(7), nil)
		m.meetingRepo.On("Update", mock.Anything, meeting, uint64(7)).Return(nil)
		m.builder.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil)

		_, err := svc.CompleteMeeting(context.Background(), "meeting-1", "exec-1", day(14, 30))
		assert.Equal(t, domain.ErrorTypeStateViolation, domain.GetErrorType(err))

		result, err := svc.CompleteMeeting(context.Background(), "meeting-1", "exec-1", day(15, 1))
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusCompleted, result.Status)
		require.NotNil(t, result.CompletedAt)
		assert.Equal(t, day(15, 1), utils.TimeValue(result.CompletedAt))
	})

	t.Run("cancelled meeting cannot be completed", func(t *testing.T) {
		svc, m := newMeetingService()
		meeting := &models.Meeting{
			UID: "meeting-1", CreatedBy: "exec-1",
			EndTime: day(15, 0), Status: models.MeetingStatusCancelled,
		}
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(7), nil)

		_, err := svc.CompleteMeeting(context.Background(), "meeting-1", "exec-1", day(16, 0))
		assert.Equal(t, domain.ErrorTypeStateViolation, domain.GetErrorType(err))
	})

	t.Run("non-creator is rejected", func(t *testing.T) {
		svc, m := newMeetingService()
		meeting := &models.Meeting{
			UID: "meeting-1", CreatedBy: "exec-1",
			EndTime: day(15, 0), Status: models.MeetingStatusScheduled,
		}
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(7), nil)

		_, err := svc.CompleteMeeting(context.Background(), "meeting-1", "exec-2", day(16, 0))
		assert.Equal(t, domain.ErrorTypeStateViolation, domain.GetErrorType(err))
	})
}
