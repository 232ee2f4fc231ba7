package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/notebook-todo/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	repo   TaskRepository
}

func NewTaskService(
	logger zerolog.Logger,
	repo TaskRepository,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to find tasks by owner")
		return nil, err
	}
	if tasks == nil {
		tasks = make([]*models.Task, 0)
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("found tasks by owner")

	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if strings.TrimSpace(params.Text) == "" {
		s.logger.Error().
			Str("user_id", params.UserID).
			Msg("empty task text")
		return nil, ErrTaskTextRequired
	}

	task, err := s.repo.Create(ctx, &models.Task{
		OwnerID:   params.UserID,
		Text:      params.Text,
		Completed: false,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.OwnerID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) SetTaskCompleted(ctx context.Context, params SetTaskCompletedParams) (*models.Task, error) {
	task, err := s.repo.UpdateCompleted(ctx, params.ID, params.UserID, params.Completed)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			s.logger.Error().
				Str("task_id", params.ID).
				Str("user_id", params.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.OwnerID).
		Bool("completed", task.Completed).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	deleted, err := s.repo.Delete(ctx, params.ID, params.UserID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to delete task")
		return err
	}
	if !deleted {
		s.logger.Warn().
			Str("task_id", params.ID).
			Str("user_id", params.UserID).
			Msg("no task to delete")
		return nil
	}

	s.logger.Info().
		Str("task_id", params.ID).
		Str("user_id", params.UserID).
		Msg("deleted task")
	return nil
}
