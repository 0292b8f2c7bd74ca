package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T, repo *fakeTasksRepo) *TaskService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewTaskService(db, &fakeRepoManager{t: repo})
}

func TestTaskCreate_OwnerForcedFromPrincipal(t *testing.T) {
	var created *models.Task
	repo := &fakeTasksRepo{
		createFn: func(ctx context.Context, task *models.Task) (*models.Task, error) {
			created = task
			return task, nil
		},
	}
	s := newTaskService(t, repo)

	_, err := s.Create(context.Background(), "alice-id", CreateTaskParams{Title: "Buy milk"})
	require.NoError(t, err)
	require.Equal(t, "alice-id", created.OwnerID)
	require.False(t, created.Completed)
}

func TestTaskCreate_TitleRequired(t *testing.T) {
	s := newTaskService(t, &fakeTasksRepo{})

	for _, title := range []string{"", "   "} {
		_, err := s.Create(context.Background(), "alice-id", CreateTaskParams{Title: title})
		require.ErrorIs(t, err, common.ErrorValidation)
		require.Equal(t, "Title is required.", err.Error())
	}
}

func TestTaskCreate_NormalizesCompleted(t *testing.T) {
	repo := &fakeTasksRepo{
		createFn: func(ctx context.Context, task *models.Task) (*models.Task, error) {
			return task, nil
		},
	}
	s := newTaskService(t, repo)

	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"bool true", true, true},
		{"Yes string", "Yes", true},
		{"no string", "no", false},
		{"bool false", false, false},
		{"absent", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := s.Create(context.Background(), "alice-id", CreateTaskParams{Title: "t", Completed: tt.in})
			require.NoError(t, err)
			require.Equal(t, tt.want, task.Completed)
		})
	}
}

func TestTaskCreate_InvalidPriority(t *testing.T) {
	s := newTaskService(t, &fakeTasksRepo{})

	_, err := s.Create(context.Background(), "alice-id", CreateTaskParams{Title: "t", Priority: "urgent"})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestTaskGet_OtherOwnerReportsNotFound(t *testing.T) {
	repo := &fakeTasksRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*models.Task, error) {
			// repository never returns a row for a non-matching owner
			return nil, common.ErrorNotFound
		},
	}
	s := newTaskService(t, repo)

	_, err := s.Get(context.Background(), "alices-task", "bob-id")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.Equal(t, "Task not found", err.Error())
}

func TestTaskUpdate_AppliesOnlySuppliedFields(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	existing := &models.Task{
		ID: "t-1", OwnerID: "alice-id", Title: "Buy milk",
		Description: "2 liters", Priority: models.PriorityLow, DueDate: &due,
	}

	var updated *models.Task
	repo := &fakeTasksRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*models.Task, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, task *models.Task) (*models.Task, error) {
			updated = task
			return task, nil
		},
	}
	s := newTaskService(t, repo)

	_, err := s.Update(context.Background(), "t-1", "alice-id", UpdateTaskParams{Completed: "Yes"})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "Buy milk", updated.Title)
	require.Equal(t, "2 liters", updated.Description)
	require.Equal(t, models.PriorityLow, updated.Priority)
	require.Equal(t, &due, updated.DueDate)
}

func TestTaskUpdate_CompletedAbsentLeftAlone(t *testing.T) {
	existing := &models.Task{ID: "t-1", OwnerID: "alice-id", Title: "Buy milk", Completed: true}

	var updated *models.Task
	repo := &fakeTasksRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*models.Task, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, task *models.Task) (*models.Task, error) {
			updated = task
			return task, nil
		},
	}
	s := newTaskService(t, repo)

	desc := "now with description"
	_, err := s.Update(context.Background(), "t-1", "alice-id", UpdateTaskParams{Description: &desc})
	require.NoError(t, err)
	require.True(t, updated.Completed, "completed not supplied, must keep stored value")
	require.Equal(t, desc, updated.Description)
}

func TestTaskUpdate_EmptyTitleRejected(t *testing.T) {
	repo := &fakeTasksRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*models.Task, error) {
			return &models.Task{ID: id, OwnerID: ownerID, Title: "old"}, nil
		},
	}
	s := newTaskService(t, repo)

	empty := "  "
	_, err := s.Update(context.Background(), "t-1", "alice-id", UpdateTaskParams{Title: &empty})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestTaskUpdate_OtherOwnerReportsNotFound(t *testing.T) {
	repo := &fakeTasksRepo{
		getFn: func(ctx context.Context, id, ownerID string) (*models.Task, error) {
			return nil, common.ErrorNotFound
		},
	}
	s := newTaskService(t, repo)

	title := "hijack"
	_, err := s.Update(context.Background(), "alices-task", "bob-id", UpdateTaskParams{Title: &title})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.Equal(t, "Task not found", err.Error())
}

func TestTaskDelete_OtherOwnerReportsNotFound(t *testing.T) {
	repo := &fakeTasksRepo{
		deleteFn: func(ctx context.Context, id, ownerID string) error {
			return common.ErrorNotFound
		},
	}
	s := newTaskService(t, repo)

	err := s.Delete(context.Background(), "alices-task", "bob-id")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.Equal(t, "Task not found", err.Error())
}

func TestTaskList_PassesOwnerThrough(t *testing.T) {
	repo := &fakeTasksRepo{
		listFn: func(ctx context.Context, ownerID string) ([]*models.Task, error) {
			require.Equal(t, "alice-id", ownerID)
			return []*models.Task{{ID: "t-2"}, {ID: "t-1"}}, nil
		},
	}
	s := newTaskService(t, repo)

	got, err := s.List(context.Background(), "alice-id")
	require.NoError(t, err)
	require.Len(t, got, 2)
}
