package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// DistributorInput carries the writable fields of a distributor.
type DistributorInput struct {
	Name        string
	ContactName string
	Email       string
	Phone       string
	Notes       string
}

// ListDistributorsInput carries all parameters for the list endpoint.
type ListDistributorsInput struct {
	Search string
	Page   int
	Limit  int
}

// ListDistributorsResult is returned by ListDistributors.
type ListDistributorsResult struct {
	Items      []*domain.Distributor
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DistributorService defines use-case operations for distributors.
type DistributorService interface {
	CreateDistributor(ctx context.Context, input DistributorInput) (*domain.Distributor, error)
	GetDistributor(ctx context.Context, id string) (*domain.Distributor, error)
	UpdateDistributor(ctx context.Context, id string, input DistributorInput) (*domain.Distributor, error)
	DeleteDistributor(ctx context.Context, id string) error
	ListDistributors(ctx context.Context, input ListDistributorsInput) (*ListDistributorsResult, error)
}
