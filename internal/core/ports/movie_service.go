package ports

import (
	"context"
	"time"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// MovieInput carries the writable fields of a movie.
type MovieInput struct {
	Title          string
	OriginalTitle  string
	DistributorID  string
	ReleaseDate    time.Time
	RuntimeMinutes int
	Status         string
	Summary        string
}

// ListMoviesInput carries all parameters for the list endpoint.
type ListMoviesInput struct {
	Status        string
	DistributorID string
	Search        string
	ReleasedFrom  time.Time
	ReleasedTo    time.Time
	Page          int
	Limit         int
}

// ListMoviesResult is returned by ListMovies.
type ListMoviesResult struct {
	Items      []*domain.Movie
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MovieService defines use-case operations for movies.
type MovieService interface {
	CreateMovie(ctx context.Context, input MovieInput) (*domain.Movie, error)
	GetMovie(ctx context.Context, id string) (*domain.Movie, error)
	UpdateMovie(ctx context.Context, id string, input MovieInput) (*domain.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
	ListMovies(ctx context.Context, input ListMoviesInput) (*ListMoviesResult, error)
}
