package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// ListTasksFilter carries query parameters for listing board tasks.
type ListTasksFilter struct {
	Stage      string // optional: filter by board stage
	MovieID    string // optional: filter by movie
	AssigneeID string // optional: filter by assignee
}

// TaskRepository defines persistence operations for board tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
	// CountByStage returns task counts grouped by board stage.
	CountByStage(ctx context.Context) (map[domain.Stage]int64, error)
}
