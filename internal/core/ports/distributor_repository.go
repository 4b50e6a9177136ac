package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// ListDistributorsFilter carries query parameters for listing distributors.
type ListDistributorsFilter struct {
	Search string // optional: partial match on name or contact_name
	Page   int    // 1-based
	Limit  int
}

// DistributorRepository defines persistence operations for distributors.
type DistributorRepository interface {
	Create(ctx context.Context, d *domain.Distributor) error
	FindByID(ctx context.Context, id string) (*domain.Distributor, error)
	Update(ctx context.Context, d *domain.Distributor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListDistributorsFilter) ([]*domain.Distributor, int64, error)
	Count(ctx context.Context) (int64, error)
}
