package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/notebook-todo/internal/models"
	"github.com/adanyl0v/notebook-todo/internal/repository/memory"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

var errStoreDown = errors.New("store down")

// failingRepository fails every call with errStoreDown.
type failingRepository struct{}

func (failingRepository) Create(context.Context, *models.Task) (*models.Task, error) {
	return nil, errStoreDown
}

func (failingRepository) FindByOwner(context.Context, string) ([]*models.Task, error) {
	return nil, errStoreDown
}

func (failingRepository) UpdateCompleted(context.Context, string, string, bool) (*models.Task, error) {
	return nil, errStoreDown
}

func (failingRepository) Delete(context.Context, string, string) (bool, error) {
	return false, errStoreDown
}

func (failingRepository) Ping(context.Context) error  { return errStoreDown }
func (failingRepository) Close(context.Context) error { return nil }

func setupTaskService(t *testing.T) services.TaskService {
	t.Helper()
	return services.NewTaskService(zerolog.Nop(), memory.New())
}

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{name: "should create task with text", text: "Buy milk"},
		{name: "should keep surrounding whitespace", text: "  Buy milk "},
		{name: "should reject empty text", text: "", wantErr: services.ErrTaskTextRequired},
		{name: "should reject whitespace-only text", text: " \t ", wantErr: services.ErrTaskTextRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := setupTaskService(t)

			task, err := service.CreateTask(context.Background(), services.CreateTaskParams{
				UserID: "auth0|alice",
				Text:   tt.text,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, task.ID)
			assert.Equal(t, tt.text, task.Text)
			assert.Equal(t, "auth0|alice", task.OwnerID)
			assert.False(t, task.Completed)
		})
	}
}

func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()
	service := setupTaskService(t)

	tasks, err := service.ListTasks(ctx, "auth0|alice")
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	for _, text := range []string{"one", "two"} {
		_, err = service.CreateTask(ctx, services.CreateTaskParams{UserID: "auth0|alice", Text: text})
		require.NoError(t, err)
	}
	_, err = service.CreateTask(ctx, services.CreateTaskParams{UserID: "auth0|bob", Text: "three"})
	require.NoError(t, err)

	tasks, err = service.ListTasks(ctx, "auth0|alice")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "one", tasks[0].Text)
	assert.Equal(t, "two", tasks[1].Text)
}

func TestTaskService_SetTaskCompleted(t *testing.T) {
	ctx := context.Background()
	service := setupTaskService(t)

	task, err := service.CreateTask(ctx, services.CreateTaskParams{UserID: "auth0|alice", Text: "Buy milk"})
	require.NoError(t, err)

	t.Run("should toggle back to the original value", func(t *testing.T) {
		updated, err := service.SetTaskCompleted(ctx, services.SetTaskCompletedParams{
			ID: task.ID, UserID: "auth0|alice", Completed: !task.Completed,
		})
		require.NoError(t, err)
		assert.True(t, updated.Completed)

		updated, err = service.SetTaskCompleted(ctx, services.SetTaskCompletedParams{
			ID: task.ID, UserID: "auth0|alice", Completed: !updated.Completed,
		})
		require.NoError(t, err)
		assert.Equal(t, task.Completed, updated.Completed)
		assert.Equal(t, "Buy milk", updated.Text)
	})

	t.Run("should return not found for another owner", func(t *testing.T) {
		updated, err := service.SetTaskCompleted(ctx, services.SetTaskCompletedParams{
			ID: task.ID, UserID: "auth0|bob", Completed: true,
		})
		assert.ErrorIs(t, err, services.ErrTaskNotFound)
		assert.Nil(t, updated)
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		_, err := service.SetTaskCompleted(ctx, services.SetTaskCompletedParams{
			ID: "missing", UserID: "auth0|alice", Completed: true,
		})
		assert.ErrorIs(t, err, services.ErrTaskNotFound)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	service := setupTaskService(t)

	task, err := service.CreateTask(ctx, services.CreateTaskParams{UserID: "auth0|alice", Text: "Buy milk"})
	require.NoError(t, err)

	err = service.DeleteTask(ctx, services.DeleteTaskParams{ID: task.ID, UserID: "auth0|bob"})
	require.NoError(t, err)
	tasks, err := service.ListTasks(ctx, "auth0|alice")
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "another owner must not delete the task")

	err = service.DeleteTask(ctx, services.DeleteTaskParams{ID: task.ID, UserID: "auth0|alice"})
	require.NoError(t, err)
	tasks, err = service.ListTasks(ctx, "auth0|alice")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	err = service.DeleteTask(ctx, services.DeleteTaskParams{ID: task.ID, UserID: "auth0|alice"})
	assert.NoError(t, err, "deleting a missing task is a no-op")
}

func TestTaskService_StorageErrors(t *testing.T) {
	ctx := context.Background()
	service := services.NewTaskService(zerolog.Nop(), failingRepository{})

	_, err := service.ListTasks(ctx, "auth0|alice")
	assert.ErrorIs(t, err, errStoreDown)

	_, err = service.CreateTask(ctx, services.CreateTaskParams{UserID: "auth0|alice", Text: "x"})
	assert.ErrorIs(t, err, errStoreDown)

	_, err = service.SetTaskCompleted(ctx, services.SetTaskCompletedParams{ID: "1", UserID: "auth0|alice"})
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, services.ErrTaskNotFound)

	err = service.DeleteTask(ctx, services.DeleteTaskParams{ID: "1", UserID: "auth0|alice"})
	assert.ErrorIs(t, err, errStoreDown)
}
