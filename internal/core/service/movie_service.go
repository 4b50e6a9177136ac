package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePage clamps pagination inputs to sane values.
func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type MovieService struct {
	repo   ports.MovieRepository
	logger zerolog.Logger
}

func NewMovieService(repo ports.MovieRepository, logger zerolog.Logger) *MovieService {
	return &MovieService{repo: repo, logger: logger}
}

func (s *MovieService) CreateMovie(ctx context.Context, input ports.MovieInput) (*domain.Movie, error) {
	status := domain.MovieStatus(input.Status)
	if status == "" {
		status = domain.MovieAnnounced
	}
	if !domain.ValidMovieStatus(status) {
		return nil, domain.ErrUnknownMovieStatus
	}

	now := time.Now().UTC()
	movie := &domain.Movie{
		ID:             uuid.NewString(),
		Title:          input.Title,
		OriginalTitle:  input.OriginalTitle,
		DistributorID:  input.DistributorID,
		ReleaseDate:    input.ReleaseDate,
		RuntimeMinutes: input.RuntimeMinutes,
		Status:         status,
		Summary:        input.Summary,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		s.logger.Error().Err(err).Msg("failed to create movie")
		return nil, err
	}

	s.logger.Info().Str("movie_id", movie.ID).Str("title", movie.Title).Msg("movie created")
	return movie, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MovieService) UpdateMovie(ctx context.Context, id string, input ports.MovieInput) (*domain.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		status := domain.MovieStatus(input.Status)
		if !domain.ValidMovieStatus(status) {
			return nil, domain.ErrUnknownMovieStatus
		}
		movie.Status = status
	}
	movie.Title = input.Title
	movie.OriginalTitle = input.OriginalTitle
	movie.DistributorID = input.DistributorID
	movie.ReleaseDate = input.ReleaseDate
	movie.RuntimeMinutes = input.RuntimeMinutes
	movie.Summary = input.Summary
	movie.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, movie); err != nil {
		s.logger.Error().Err(err).Str("movie_id", id).Msg("failed to update movie")
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("movie_id", id).Msg("movie deleted")
	return nil
}

func (s *MovieService) ListMovies(ctx context.Context, input ports.ListMoviesInput) (*ports.ListMoviesResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	items, total, err := s.repo.List(ctx, ports.ListMoviesFilter{
		Status:        input.Status,
		DistributorID: input.DistributorID,
		Search:        input.Search,
		ReleasedFrom:  input.ReleasedFrom,
		ReleasedTo:    input.ReleasedTo,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListMoviesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
