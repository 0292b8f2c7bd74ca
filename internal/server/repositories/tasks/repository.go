package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is owner-scoped by construction: every read or write that targets
// a single task takes the owner id and folds it into the SQL predicate, so a
// task belonging to another user behaves exactly like a missing one.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	GetByID(ctx context.Context, id string, ownerID string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string, ownerID string) error
}
