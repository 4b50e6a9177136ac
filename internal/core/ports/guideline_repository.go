package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// ListGuidelinesFilter carries query parameters for listing guidelines.
type ListGuidelinesFilter struct {
	Category string // optional: filter by category
	Search   string // optional: partial match on title
	Page     int    // 1-based
	Limit    int
}

// GuidelineRepository defines persistence operations for guideline documents.
type GuidelineRepository interface {
	Create(ctx context.Context, g *domain.Guideline) error
	FindByID(ctx context.Context, id string) (*domain.Guideline, error)
	Update(ctx context.Context, g *domain.Guideline) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListGuidelinesFilter) ([]*domain.Guideline, int64, error)
	Count(ctx context.Context) (int64, error)
}
