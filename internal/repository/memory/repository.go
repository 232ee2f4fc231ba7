// Package memory keeps tasks in process memory. It backs the
// memory:// store and the service and handler tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/adanyl0v/notebook-todo/internal/models"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

type Repository struct {
	mu    sync.RWMutex
	tasks []models.Task
}

func New() *Repository {
	return &Repository{}
}

func (r *Repository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	created := models.Task{
		ID:        id.String(),
		OwnerID:   task.OwnerID,
		Text:      task.Text,
		Completed: task.Completed,
	}

	r.mu.Lock()
	r.tasks = append(r.tasks, created)
	r.mu.Unlock()

	return &created, nil
}

func (r *Repository) FindByOwner(_ context.Context, ownerID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*models.Task, 0)
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			task := t
			tasks = append(tasks, &task)
		}
	}
	return tasks, nil
}

func (r *Repository) UpdateCompleted(_ context.Context, id, ownerID string, completed bool) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id && r.tasks[i].OwnerID == ownerID {
			r.tasks[i].Completed = completed
			task := r.tasks[i]
			return &task, nil
		}
	}
	return nil, services.ErrTaskNotFound
}

func (r *Repository) Delete(_ context.Context, id, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == id && r.tasks[i].OwnerID == ownerID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) Ping(context.Context) error {
	return nil
}

func (r *Repository) Close(context.Context) error {
	return nil
}
