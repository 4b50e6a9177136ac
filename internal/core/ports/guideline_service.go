package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// GuidelineInput carries the writable fields of a guideline document.
type GuidelineInput struct {
	Title    string
	Category string
	Body     string
}

// ListGuidelinesInput carries all parameters for the list endpoint.
type ListGuidelinesInput struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// ListGuidelinesResult is returned by ListGuidelines.
type ListGuidelinesResult struct {
	Items      []*domain.Guideline
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// GuidelineService defines use-case operations for guideline documents.
// Every update bumps the document version; readers always get the latest.
type GuidelineService interface {
	CreateGuideline(ctx context.Context, input GuidelineInput) (*domain.Guideline, error)
	GetGuideline(ctx context.Context, id string) (*domain.Guideline, error)
	UpdateGuideline(ctx context.Context, id string, input GuidelineInput) (*domain.Guideline, error)
	DeleteGuideline(ctx context.Context, id string) error
	ListGuidelines(ctx context.Context, input ListGuidelinesInput) (*ListGuidelinesResult, error)
}
