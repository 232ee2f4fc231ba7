// Package sqlstore keeps tasks in a SQL database reached through
// database/sql. SQLite and MySQL share the queries and differ only in
// their schema.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/adanyl0v/notebook-todo/internal/models"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

type Dialect struct {
	Driver string
	schema []string
}

var (
	SQLite = Dialect{
		Driver: "sqlite",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS tasks (
    seq       INTEGER PRIMARY KEY AUTOINCREMENT,
    id        TEXT    NOT NULL UNIQUE,
    user_id   TEXT    NOT NULL,
    text      TEXT    NOT NULL CHECK (text <> ''),
    completed BOOLEAN NOT NULL DEFAULT 0
)`,
			`CREATE INDEX IF NOT EXISTS tasks_user_id_idx ON tasks (user_id)`,
		},
	}
	MySQL = Dialect{
		Driver: "mysql",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS tasks (
    seq       BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
    id        CHAR(36)     NOT NULL UNIQUE,
    user_id   VARCHAR(255) NOT NULL,
    text      TEXT         NOT NULL,
    completed BOOLEAN      NOT NULL DEFAULT FALSE,
    INDEX tasks_user_id_idx (user_id)
)`,
		},
	}
)

type Repository struct {
	db *sql.DB
}

// Open connects to the database and creates the tasks table.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Repository, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect.Driver, err)
	}
	if dialect.Driver == SQLite.Driver {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range dialect.schema {
		_, err = db.ExecContext(ctx, stmt)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return &Repository{db: db}, nil
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
INSERT INTO tasks (id, user_id, text, completed)
VALUES (?, ?, ?, ?)
`
	_, err = r.db.ExecContext(
		ctx,
		insertTaskQuery,
		created.ID,
		created.OwnerID,
		created.Text,
		created.Completed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id, text, completed
FROM tasks
WHERE user_id = ?
ORDER BY seq
`
	rows, err := r.db.QueryContext(ctx, selectTasksByUserIDQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{OwnerID: ownerID}
		err = rows.Scan(&task.ID, &task.Text, &task.Completed)
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

// UpdateCompleted selects the row before updating it because MySQL
// reports zero affected rows when the value does not change.
func (r *Repository) UpdateCompleted(ctx context.Context, id, ownerID string, completed bool) (*models.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	task := &models.Task{
		ID:        id,
		OwnerID:   ownerID,
		Completed: completed,
	}

	const selectTaskQuery = `
SELECT text FROM tasks WHERE id = ? AND user_id = ?
`
	err = tx.QueryRowContext(ctx, selectTaskQuery, id, ownerID).Scan(&task.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to select task: %w", err)
	}

	const updateTaskCompletedQuery = `
UPDATE tasks SET completed = ? WHERE id = ? AND user_id = ?
`
	_, err = tx.ExecContext(ctx, updateTaskCompletedQuery, completed, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return task, nil
}

func (r *Repository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	const deleteTaskQuery = `
DELETE FROM tasks WHERE id = ? AND user_id = ?
`
	res, err := r.db.ExecContext(ctx, deleteTaskQuery, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Close(context.Context) error {
	return r.db.Close()
}
