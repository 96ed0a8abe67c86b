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
)

func newTaskService() (*TaskService, *mocks.MockExecutiveRepository, *mocks.MockMessageBuilder) {
	executiveRepo := &mocks.MockExecutiveRepository{}
	builder := &mocks.MockMessageBuilder{}
	return NewTaskService(executiveRepo, builder), executiveRepo, builder
}

func TestCreateTask(t *testing.T) {
	t.Run("explicit end time", func(t *testing.T) {
		svc, executiveRepo, builder := newTaskService()
		executive := &models.Executive{UID: "exec-1"}

		executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(executive, uint64(1), nil)
		executiveRepo.On("Update", mock.Anything, executive, uint64(1)).Return(nil)
		builder.On("SendIndexExecutive", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil)

		task, err := svc.CreateTask(context.Background(), "exec-1", &CreateTaskRequest{
			Title:     "Read board deck",
			StartTime: day(9, 0),
			EndTime:   day(10, 0),
		}, time.Now())
		require.NoError(t, err)

		assert.Equal(t, day(10, 0), task.EndTime)
		assert.Equal(t, models.TaskStatusScheduled, task.Status)
		require.Len(t, executive.Tasks, 1)
	})

	t.Run("missing end time defaults to thirty minutes", func(t *testing.T) {
		svc, executiveRepo, builder := newTaskService()
		executive := &models.Executive{UID: "exec-1"}

		executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(executive, uint64(1), nil)
		executiveRepo.On("Update", mock.Anything, executive, uint64(1)).Return(nil)
		builder.On("SendIndexExecutive", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil)

		task, err := svc.CreateTask(context.Background(), "exec-1", &CreateTaskRequest{
			Title:     "Quick call",
			StartTime: day(9, 0),
		}, time.Now())
		require.NoError(t, err)

		assert.Equal(t, day(9, 30), task.EndTime)
	})

	t.Run("inverted interval rejected", func(t *testing.T) {
		svc, executiveRepo, _ := newTaskService()

		_, err := svc.CreateTask(context.Background(), "exec-1", &CreateTaskRequest{
			Title:     "Bad",
			StartTime: day(10, 0),
			EndTime:   day(9, 0),
		}, time.Now())
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
		executiveRepo.AssertNotCalled(t, "GetWithRevision", mock.Anything, mock.Anything)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("existing task removed", func(t *testing.T) {
		svc, executiveRepo, builder := newTaskService()
		executive := &models.Executive{
			UID:   "exec-1",
			Tasks: []models.Task{{UID: "task-1"}},
		}

		executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(executive, uint64(2), nil)
		executiveRepo.On("Update", mock.Anything, executive, uint64(2)).Return(nil)
		builder.On("SendIndexExecutive", mock.Anything, models.ActionUpdated, mock.Anything).Return(nil)

		err := svc.DeleteTask(context.Background(), "exec-1", "task-1")
		require.NoError(t, err)
		assert.Empty(t, executive.Tasks)
	})

	t.Run("unknown task not found", func(t *testing.T) {
		svc, executiveRepo, _ := newTaskService()
		executive := &models.Executive{UID: "exec-1"}

		executiveRepo.On("GetWithRevision", mock.Anything, "exec-1").Return(executive, uint64(2), nil)

		err := svc.DeleteTask(context.Background(), "exec-1", "task-404")
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
		executiveRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCreateExecutive(t *testing.T) {
	t.Run("new executive", func(t *testing.T) {
		executiveRepo := &mocks.MockExecutiveRepository{}
		builder := &mocks.MockMessageBuilder{}
		svc := NewExecutiveService(executiveRepo, builder)

		executiveRepo.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(nil, domain.NewNotFoundError("executive not found"))
		executiveRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Executive")).Return(nil)
		builder.On("SendIndexExecutive", mock.Anything, models.ActionCreated, mock.Anything).Return(nil)

		executive, err := svc.CreateExecutive(context.Background(), &CreateExecutiveRequest{
			Name:  "Alice",
			Email: "Alice@Example.COM",
		}, time.Now())
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", executive.Email)
		assert.Equal(t, models.RoleExecutive, executive.Role)
		assert.NotEmpty(t, executive.UID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		executiveRepo := &mocks.MockExecutiveRepository{}
		svc := NewExecutiveService(executiveRepo, &mocks.MockMessageBuilder{})

		executiveRepo.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(&models.Executive{UID: "exec-1", Email: "alice@example.com"}, nil)

		_, err := svc.CreateExecutive(context.Background(), &CreateExecutiveRequest{
			Name:  "Alice",
			Email: "alice@example.com",
		}, time.Now())
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
		executiveRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		executiveRepo := &mocks.MockExecutiveRepository{}
		svc := NewExecutiveService(executiveRepo, &mocks.MockMessageBuilder{})

		_, err := svc.CreateExecutive(context.Background(), &CreateExecutiveRequest{
			Name:  "Mallory",
			Email: "mallory@example.com",
			Role:  "administrator",
		}, time.Now())
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}
