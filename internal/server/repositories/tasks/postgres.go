// Package tasks provides the PostgreSQL-backed repository for task rows.
// Every scoped statement carries the combined (id, owner_id) predicate, so
// ownership is enforced atomically by the database rather than by a separate
// read-then-write check.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// nullableString maps "" to NULL so an unset priority stays unset in storage.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanTask(row interface{ Scan(dest ...any) error }) (*models.Task, error) {
	task := &models.Task{}
	var priority sql.NullString
	var dueDate sql.NullTime

	err := row.Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description,
		&priority, &dueDate, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}

	task.Priority = priority.String
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	return task, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, owner_id, title, description, priority, due_date, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, owner_id, title, description, priority, due_date, completed, created_at, updated_at
		 `

	task.ID = uuid.NewString()

	row := r.db.QueryRowContext(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description,
		nullableString(task.Priority), task.DueDate, task.Completed)

	created, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

// ListByOwner returns all tasks of ownerID, most recently created first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query :=
		`SELECT id, owner_id, title, description, priority, due_date, completed, created_at, updated_at
		 FROM tasks
		 WHERE owner_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string, ownerID string) (*models.Task, error) {
	query :=
		`SELECT id, owner_id, title, description, priority, due_date, completed, created_at, updated_at
		 FROM tasks
		 WHERE id = $1 AND owner_id = $2
		 `

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Update writes the full row under the combined (id, owner_id) predicate.
// A task owned by someone else matches zero rows and reports ErrorNotFound,
// identical to a task that does not exist.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks
		 SET title = $3, description = $4, priority = $5, due_date = $6, completed = $7, updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING id, owner_id, title, description, priority, due_date, completed, created_at, updated_at
		 `

	row := r.db.QueryRowContext(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description,
		nullableString(task.Priority), task.DueDate, task.Completed)

	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, ownerID string) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
