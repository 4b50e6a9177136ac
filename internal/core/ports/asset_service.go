package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// AssetInput carries the writable fields of a media asset.
type AssetInput struct {
	MovieID         string
	Kind            string
	Language        string
	Format          string
	DurationSeconds int
	SizeBytes       int64
	StorageKey      string
	Status          string
}

// ListAssetsInput carries all parameters for the list endpoint.
type ListAssetsInput struct {
	MovieID  string
	Kind     string
	Status   string
	Language string
	Page     int
	Limit    int
}

// ListAssetsResult is returned by ListAssets.
type ListAssetsResult struct {
	Items      []*domain.Asset
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AssetService defines use-case operations for media assets.
type AssetService interface {
	CreateAsset(ctx context.Context, input AssetInput) (*domain.Asset, error)
	GetAsset(ctx context.Context, id string) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, id string, input AssetInput) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, id string) error
	ListAssets(ctx context.Context, input ListAssetsInput) (*ListAssetsResult, error)
}
