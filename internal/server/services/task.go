package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// CreateTaskParams carries the caller-supplied fields for a new task.
// Completed is raw input and goes through models.NormalizeCompleted.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	Completed   any
}

// UpdateTaskParams carries a partial update; nil pointers mean "leave as is".
// Completed nil means not supplied.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *time.Time
	Completed   any
}

// TaskService implements the owner-scoped task store. Every operation takes
// the acting principal's id and forces it into the storage predicate, so no
// request payload can widen the scope.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func errTaskNotFound() error {
	return common.WithMessage(common.ErrorNotFound, "Task not found")
}

// Create stores a new task for ownerID. The owner comes exclusively from the
// authenticated principal; nothing in the params can override it.
func (s *TaskService) Create(ctx context.Context, ownerID string, p CreateTaskParams) (*models.Task, error) {

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, common.WithMessage(common.ErrorValidation, "Title is required.")
	}
	if !models.ValidPriority(p.Priority) {
		return nil, common.WithMessage(common.ErrorValidation, "Priority must be low, medium or high.")
	}

	task := &models.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: p.Description,
		Priority:    p.Priority,
		DueDate:     p.DueDate,
		Completed:   models.NormalizeCompleted(p.Completed),
	}

	return s.repomanager.Tasks(s.db).Create(ctx, task)
}

// List returns the owner's tasks, most recently created first.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByOwner(ctx, ownerID)
}

// Get returns the task only when it exists and belongs to ownerID; a task
// owned by someone else is reported exactly like a missing one.
func (s *TaskService) Get(ctx context.Context, id, ownerID string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errTaskNotFound()
		}
		return nil, err
	}
	return task, nil
}

// Update applies only the supplied fields. The final UPDATE carries the
// combined (id, owner_id) predicate, so the ownership check stays atomic even
// though the current row is read first to merge the partial input.
func (s *TaskService) Update(ctx context.Context, id, ownerID string, p UpdateTaskParams) (*models.Task, error) {

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errTaskNotFound()
		}
		return nil, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, common.WithMessage(common.ErrorValidation, "Title is required.")
		}
		task.Title = title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Priority != nil {
		if !models.ValidPriority(*p.Priority) {
			return nil, common.WithMessage(common.ErrorValidation, "Priority must be low, medium or high.")
		}
		task.Priority = *p.Priority
	}
	if p.DueDate != nil {
		task.DueDate = p.DueDate
	}
	if p.Completed != nil {
		task.Completed = models.NormalizeCompleted(p.Completed)
	}

	updated, err := repo.Update(ctx, task)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errTaskNotFound()
		}
		return nil, err
	}

	return updated, nil
}

// Delete removes the task under the same scoped predicate discipline.
func (s *TaskService) Delete(ctx context.Context, id, ownerID string) error {
	err := s.repomanager.Tasks(s.db).Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return errTaskNotFound()
		}
		return err
	}
	return nil
}
