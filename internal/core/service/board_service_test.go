package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

type stubTaskRepo struct {
	tasks map[string]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	clone.StageHistory = append([]domain.StageHistoryEntry(nil), t.StageHistory...)
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.ListTasksFilter) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Stage != "" && string(t.Stage) != filter.Stage {
			continue
		}
		if filter.MovieID != "" && t.MovieID != filter.MovieID {
			continue
		}
		if filter.AssigneeID != "" && t.AssigneeID != filter.AssigneeID {
			continue
		}
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *stubTaskRepo) CountByStage(_ context.Context) (map[domain.Stage]int64, error) {
	counts := make(map[domain.Stage]int64)
	for _, t := range r.tasks {
		counts[t.Stage]++
	}
	return counts, nil
}

func TestBoardService_CreateTaskStartsPlanned(t *testing.T) {
	svc := NewBoardService(newStubTaskRepo(), zerolog.Nop())

	task, err := svc.CreateTask(context.Background(), ports.TaskInput{
		Title:     "record AD narration",
		AssetKind: "audio_description",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Stage != domain.StagePlanned {
		t.Errorf("stage = %s, want planned", task.Stage)
	}
	if len(task.StageHistory) != 1 || task.StageHistory[0].Stage != domain.StagePlanned {
		t.Errorf("history = %v, want one planned entry", task.StageHistory)
	}
}

func TestBoardService_CreateTaskRejectsUnknownKind(t *testing.T) {
	svc := NewBoardService(newStubTaskRepo(), zerolog.Nop())
	_, err := svc.CreateTask(context.Background(), ports.TaskInput{
		Title:     "bad",
		AssetKind: "hologram",
	})
	if !errors.Is(err, domain.ErrUnknownAssetKind) {
		t.Fatalf("err = %v, want ErrUnknownAssetKind", err)
	}
}

func TestBoardService_MoveTaskValidTransition(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewBoardService(repo, zerolog.Nop())
	task, err := svc.CreateTask(context.Background(), ports.TaskInput{Title: "caption pass"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	moved, err := svc.MoveTask(context.Background(), ports.MoveTaskInput{
		TaskID:  task.ID,
		Stage:   "in_production",
		MovedBy: "u1",
	})
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if moved.Stage != domain.StageInProduction {
		t.Errorf("stage = %s, want in_production", moved.Stage)
	}
	if len(moved.StageHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(moved.StageHistory))
	}
	last := moved.StageHistory[len(moved.StageHistory)-1]
	if last.Stage != domain.StageInProduction || last.MovedBy != "u1" {
		t.Errorf("history entry = %+v", last)
	}
}

func TestBoardService_MoveTaskIllegalJump(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewBoardService(repo, zerolog.Nop())
	task, err := svc.CreateTask(context.Background(), ports.TaskInput{Title: "caption pass"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	_, err = svc.MoveTask(context.Background(), ports.MoveTaskInput{
		TaskID: task.ID,
		Stage:  "completed",
	})
	if !errors.Is(err, domain.ErrInvalidStageTransition) {
		t.Fatalf("err = %v, want ErrInvalidStageTransition", err)
	}

	// The rejected move leaves the task untouched.
	got, _ := svc.GetTask(context.Background(), task.ID)
	if got.Stage != domain.StagePlanned || len(got.StageHistory) != 1 {
		t.Errorf("task changed after rejected move: %+v", got)
	}
}

func TestBoardService_MoveTaskUnknownStage(t *testing.T) {
	svc := NewBoardService(newStubTaskRepo(), zerolog.Nop())
	_, err := svc.MoveTask(context.Background(), ports.MoveTaskInput{TaskID: "x", Stage: "archived"})
	if !errors.Is(err, domain.ErrUnknownStage) {
		t.Fatalf("err = %v, want ErrUnknownStage", err)
	}
}

func TestBoardService_UpdateTaskKeepsStage(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewBoardService(repo, zerolog.Nop())
	task, err := svc.CreateTask(context.Background(), ports.TaskInput{Title: "original"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.MoveTask(context.Background(), ports.MoveTaskInput{TaskID: task.ID, Stage: "in_production"}); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}

	updated, err := svc.UpdateTask(context.Background(), task.ID, ports.TaskInput{Title: "renamed"})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("title = %s", updated.Title)
	}
	if updated.Stage != domain.StageInProduction {
		t.Errorf("stage changed through UpdateTask: %s", updated.Stage)
	}
}

func TestBoardService_GetBoardAlwaysHasFourColumns(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewBoardService(repo, zerolog.Nop())
	if _, err := svc.CreateTask(context.Background(), ports.TaskInput{Title: "one"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	board, err := svc.GetBoard(context.Background(), ports.ListTasksFilter{})
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if len(board.Columns) != len(domain.Stages) {
		t.Fatalf("columns = %d, want %d", len(board.Columns), len(domain.Stages))
	}
	for i, stage := range domain.Stages {
		if board.Columns[i].Stage != stage {
			t.Errorf("column[%d] = %s, want %s", i, board.Columns[i].Stage, stage)
		}
	}
	if len(board.Columns[0].Tasks) != 1 {
		t.Errorf("planned column should hold the new task")
	}
}
