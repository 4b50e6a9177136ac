package ports

import (
	"context"
	"time"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// ListMoviesFilter carries all query parameters for listing movies.
type ListMoviesFilter struct {
	Status        string    // optional: filter by release status
	DistributorID string    // optional: filter by distributor
	Search        string    // optional: partial match on title or original_title
	ReleasedFrom  time.Time // optional: release_date >= ReleasedFrom
	ReleasedTo    time.Time // optional: release_date <= ReleasedTo
	Page          int       // 1-based
	Limit         int       // max rows per page (capped at 100 by service)
}

// MovieRepository defines persistence operations for movies.
type MovieRepository interface {
	Create(ctx context.Context, m *domain.Movie) error
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	Update(ctx context.Context, m *domain.Movie) error
	Delete(ctx context.Context, id string) error
	// List returns a page of movies matching filter and the total count.
	List(ctx context.Context, filter ListMoviesFilter) ([]*domain.Movie, int64, error)
	// CountByStatus returns movie counts grouped by release status.
	CountByStatus(ctx context.Context) (map[domain.MovieStatus]int64, error)
}
