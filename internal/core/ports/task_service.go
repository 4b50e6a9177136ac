package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// TaskInput carries the writable fields of a board task.
type TaskInput struct {
	Title      string
	MovieID    string
	AssetKind  string
	AssigneeID string
	Notes      string
}

// MoveTaskInput carries a stage move request.
type MoveTaskInput struct {
	TaskID  string
	Stage   string
	MovedBy string
	Notes   string
}

// Board is the kanban view: every task grouped under its stage, in the
// fixed four-stage column order.
type Board struct {
	Columns []BoardColumn
}

// BoardColumn is one kanban column.
type BoardColumn struct {
	Stage domain.Stage
	Tasks []*domain.Task
}

// BoardService defines use-case operations for the production board.
type BoardService interface {
	CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, input TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	// MoveTask applies one validated stage transition and appends it to the
	// task's stage history.
	MoveTask(ctx context.Context, input MoveTaskInput) (*domain.Task, error)
	GetBoard(ctx context.Context, filter ListTasksFilter) (*Board, error)
}
