package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// ListAssetsFilter carries query parameters for listing media assets.
type ListAssetsFilter struct {
	MovieID  string // optional: filter by movie
	Kind     string // optional: filter by asset kind
	Status   string // optional: filter by review status
	Language string // optional: filter by language tag
	Page     int    // 1-based
	Limit    int
}

// AssetStats aggregates counts and storage per asset kind.
type AssetStats struct {
	Kind       domain.AssetKind
	Count      int64
	TotalBytes int64
}

// AssetRepository defines persistence operations for media assets.
type AssetRepository interface {
	Create(ctx context.Context, a *domain.Asset) error
	FindByID(ctx context.Context, id string) (*domain.Asset, error)
	Update(ctx context.Context, a *domain.Asset) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListAssetsFilter) ([]*domain.Asset, int64, error)
	// StatsByKind returns per-kind counts and total storage bytes.
	StatsByKind(ctx context.Context) ([]AssetStats, error)
}
