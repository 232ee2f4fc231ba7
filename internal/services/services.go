package services

import (
	"context"
	"errors"

	"github.com/adanyl0v/notebook-todo/internal/models"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskTextRequired = errors.New("task text is required")
)

// TaskRepository is the storage contract for tasks. Every lookup and
// mutation is scoped by the owner, so a repository never hands out
// a task belonging to somebody else.
type TaskRepository interface {
	// Create persists the task and returns it with the assigned ID.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// FindByOwner returns all tasks of the owner in storage order.
	FindByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)

	// UpdateCompleted sets the completed flag of the task with the given
	// ID and owner. It returns ErrTaskNotFound if there is no such task.
	UpdateCompleted(ctx context.Context, id, ownerID string, completed bool) (*models.Task, error)

	// Delete removes the task with the given ID and owner and reports
	// whether a task was actually removed.
	Delete(ctx context.Context, id, ownerID string) (bool, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type TaskService interface {
	// ListTasks returns every task owned by the user. The result is
	// never nil.
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// CreateTask stores a new uncompleted task for the user.
	//
	// It returns ErrTaskTextRequired if the text is blank.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// SetTaskCompleted updates the completed flag of the user's task.
	//
	// It returns ErrTaskNotFound if the user has no task with that ID.
	SetTaskCompleted(ctx context.Context, params SetTaskCompletedParams) (*models.Task, error)

	// DeleteTask removes the user's task. Deleting a missing task is
	// not an error.
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type CreateTaskParams struct {
	UserID string
	Text   string
}

type SetTaskCompletedParams struct {
	ID        string
	UserID    string
	Completed bool
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}
