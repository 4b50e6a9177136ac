package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/api/metrics"
	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// BoardService implements the production kanban board. Tasks are created in
// the planned stage and move through the four-stage transition table.
type BoardService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewBoardService(repo ports.TaskRepository, logger zerolog.Logger) *BoardService {
	return &BoardService{repo: repo, logger: logger}
}

func (s *BoardService) CreateTask(ctx context.Context, input ports.TaskInput) (*domain.Task, error) {
	if input.AssetKind != "" {
		if _, ok := domain.ParseAssetKind(input.AssetKind); !ok {
			return nil, domain.ErrUnknownAssetKind
		}
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:         uuid.NewString(),
		Title:      input.Title,
		MovieID:    input.MovieID,
		AssetKind:  domain.AssetKind(input.AssetKind),
		AssigneeID: input.AssigneeID,
		Notes:      input.Notes,
		Stage:      domain.StagePlanned,
		StageHistory: []domain.StageHistoryEntry{
			{Stage: domain.StagePlanned, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("title", task.Title).Msg("task created")
	return task, nil
}

func (s *BoardService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateTask edits a task's fields. The stage is not touched here; stage
// moves go through MoveTask so the transition table always applies.
func (s *BoardService) UpdateTask(ctx context.Context, id string, input ports.TaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AssetKind != "" {
		kind, ok := domain.ParseAssetKind(input.AssetKind)
		if !ok {
			return nil, domain.ErrUnknownAssetKind
		}
		task.AssetKind = kind
	}
	task.Title = input.Title
	task.MovieID = input.MovieID
	task.AssigneeID = input.AssigneeID
	task.Notes = input.Notes
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}
	return task, nil
}

func (s *BoardService) DeleteTask(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

// MoveTask applies one validated stage transition and appends it to the
// task's stage history.
func (s *BoardService) MoveTask(ctx context.Context, input ports.MoveTaskInput) (*domain.Task, error) {
	next, ok := domain.ParseStage(input.Stage)
	if !ok {
		return nil, domain.ErrUnknownStage
	}

	task, err := s.repo.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	if !task.Stage.CanTransitionTo(next) {
		metrics.BoardTransitionsRejectedTotal.Inc()
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidStageTransition, task.Stage, next)
	}

	from := task.Stage
	now := time.Now().UTC()
	task.Stage = next
	task.StageHistory = append(task.StageHistory, domain.StageHistoryEntry{
		Stage:     next,
		Timestamp: now,
		MovedBy:   input.MovedBy,
		Notes:     input.Notes,
	})
	task.UpdatedAt = now

	if err := s.repo.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", task.ID).Msg("failed to move task")
		return nil, err
	}

	metrics.BoardTransitionsTotal.WithLabelValues(string(from), string(next)).Inc()
	s.logger.Info().
		Str("task_id", task.ID).
		Str("from", string(from)).
		Str("to", string(next)).
		Msg("task moved")

	return task, nil
}

// GetBoard returns every matching task grouped under its stage, with the
// four columns always present in board order.
func (s *BoardService) GetBoard(ctx context.Context, filter ports.ListTasksFilter) (*ports.Board, error) {
	if filter.Stage != "" {
		if _, ok := domain.ParseStage(filter.Stage); !ok {
			return nil, domain.ErrUnknownStage
		}
	}

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	byStage := make(map[domain.Stage][]*domain.Task, len(domain.Stages))
	for _, t := range tasks {
		byStage[t.Stage] = append(byStage[t.Stage], t)
	}

	board := &ports.Board{Columns: make([]ports.BoardColumn, 0, len(domain.Stages))}
	for _, stage := range domain.Stages {
		board.Columns = append(board.Columns, ports.BoardColumn{
			Stage: stage,
			Tasks: byStage[stage],
		})
	}
	return board, nil
}
