package domain

import (
	"errors"
	"strings"
	"time"
)

// Stage is the kanban column a production task sits in.
type Stage string

const (
	StagePlanned      Stage = "planned"
	StageInProduction Stage = "in_production"
	StageReview       Stage = "review"
	StageCompleted    Stage = "completed"
)

// Stages lists all stages in board order.
var Stages = []Stage{StagePlanned, StageInProduction, StageReview, StageCompleted}

// validStageTransitions defines the allowed board moves: one step forward,
// one step back for rework, and reopening a completed task into review.
var validStageTransitions = map[Stage][]Stage{
	StagePlanned:      {StageInProduction},
	StageInProduction: {StageReview, StagePlanned},
	StageReview:       {StageCompleted, StageInProduction},
	StageCompleted:    {StageReview},
}

var (
	ErrInvalidStageTransition = errors.New("invalid stage transition")
	ErrTaskNotFound           = errors.New("task not found")
	ErrUnknownStage           = errors.New("unknown stage")
)

// ParseStage converts a string into a known Stage.
func ParseStage(value string) (Stage, bool) {
	normalized := Stage(strings.ToLower(strings.TrimSpace(value)))
	for _, st := range Stages {
		if st == normalized {
			return st, true
		}
	}
	return "", false
}

// CanTransitionTo reports whether a move from the current stage to next is valid.
func (s Stage) CanTransitionTo(next Stage) bool {
	for _, allowed := range validStageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StageHistoryEntry records a single stage move on a task.
type StageHistoryEntry struct {
	Stage     Stage     `json:"stage" bson:"stage"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	MovedBy   string    `json:"moved_by,omitempty" bson:"moved_by,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Task is a card on the production board: one unit of accessibility work
// (e.g. "record AD narration for movie X") moving through the four stages.
type Task struct {
	ID           string              `json:"id" bson:"_id,omitempty"`
	Title        string              `json:"title" bson:"title"`
	MovieID      string              `json:"movie_id,omitempty" bson:"movie_id,omitempty"`
	AssetKind    AssetKind           `json:"asset_kind,omitempty" bson:"asset_kind,omitempty"`
	AssigneeID   string              `json:"assignee_id,omitempty" bson:"assignee_id,omitempty"`
	Notes        string              `json:"notes,omitempty" bson:"notes,omitempty"`
	Stage        Stage               `json:"stage" bson:"stage"`
	StageHistory []StageHistoryEntry `json:"stage_history" bson:"stage_history"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}
