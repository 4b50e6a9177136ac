package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// ListPersonnelFilter carries query parameters for listing personnel.
type ListPersonnelFilter struct {
	Kind       string // optional: filter by person kind
	ActiveOnly bool   // when true, only active people are returned
	Search     string // optional: partial match on name or kana
	Page       int    // 1-based
	Limit      int
}

// PersonnelRepository defines persistence operations for the production roster.
type PersonnelRepository interface {
	Create(ctx context.Context, p *domain.Person) error
	FindByID(ctx context.Context, id string) (*domain.Person, error)
	Update(ctx context.Context, p *domain.Person) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListPersonnelFilter) ([]*domain.Person, int64, error)
	// CountByKind returns roster counts grouped by person kind.
	CountByKind(ctx context.Context) (map[domain.PersonKind]int64, error)
}
