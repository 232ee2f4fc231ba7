package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/notebook-todo/internal/models"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

const createTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id         UUID PRIMARY KEY,
    user_id    TEXT        NOT NULL,
    text       TEXT        NOT NULL CHECK (text <> ''),
    completed  BOOLEAN     NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS tasks_user_id_idx ON tasks (user_id);
`

type Repository struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for the connection URL and creates the tasks
// table if it does not exist yet.
func Connect(ctx context.Context, connURL string, connectTimeout time.Duration) (*Repository, error) {
	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	_, err = pool.Exec(ctx, createTasksTableQuery)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tasks table: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	taskUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task uuid: %w", err)
	}

	created := &models.Task{
		ID:        taskUUID.String(),
		OwnerID:   task.OwnerID,
		Text:      task.Text,
		Completed: task.Completed,
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   text,
                   completed,
                   created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = r.pool.Exec(
		ctx,
		insertTaskQuery,
		created.ID,
		created.OwnerID,
		created.Text,
		created.Completed,
		time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       text,
       completed
FROM tasks
WHERE user_id = $1
ORDER BY created_at
`
	rows, err := r.pool.Query(ctx, selectTasksByUserIDQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{OwnerID: ownerID}
		err = rows.Scan(
			&task.ID,
			&task.Text,
			&task.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return tasks, nil
}

func (r *Repository) UpdateCompleted(ctx context.Context, id, ownerID string, completed bool) (*models.Task, error) {
	if uuid.Validate(id) != nil {
		return nil, services.ErrTaskNotFound
	}

	task := &models.Task{
		ID:        id,
		OwnerID:   ownerID,
		Completed: completed,
	}

	const updateTaskCompletedQuery = `
UPDATE tasks
SET completed = $1
WHERE id = $2 AND user_id = $3
RETURNING text
`
	err := r.pool.QueryRow(
		ctx,
		updateTaskCompletedQuery,
		task.Completed,
		task.ID,
		task.OwnerID,
	).Scan(&task.Text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, services.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (r *Repository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, nil
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := r.pool.Exec(ctx, deleteTaskQuery, id, ownerID)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close(context.Context) error {
	r.pool.Close()
	return nil
}

func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
