package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

type AssetService struct {
	repo   ports.AssetRepository
	movies ports.MovieRepository
	logger zerolog.Logger
}

func NewAssetService(repo ports.AssetRepository, movies ports.MovieRepository, logger zerolog.Logger) *AssetService {
	return &AssetService{repo: repo, movies: movies, logger: logger}
}

func (s *AssetService) CreateAsset(ctx context.Context, input ports.AssetInput) (*domain.Asset, error) {
	kind, ok := domain.ParseAssetKind(input.Kind)
	if !ok {
		return nil, domain.ErrUnknownAssetKind
	}
	status := domain.AssetStatus(input.Status)
	if status == "" {
		status = domain.AssetDraft
	}
	if !domain.ValidAssetStatus(status) {
		return nil, domain.ErrUnknownAssetStatus
	}

	// The movie must exist; an asset without its title is an orphan.
	if _, err := s.movies.FindByID(ctx, input.MovieID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.Asset{
		ID:              uuid.NewString(),
		MovieID:         input.MovieID,
		Kind:            kind,
		Language:        input.Language,
		Format:          input.Format,
		DurationSeconds: input.DurationSeconds,
		SizeBytes:       input.SizeBytes,
		StorageKey:      input.StorageKey,
		Version:         1,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error().Err(err).Msg("failed to create asset")
		return nil, err
	}

	s.logger.Info().Str("asset_id", a.ID).Str("movie_id", a.MovieID).Str("kind", string(a.Kind)).Msg("asset created")
	return a, nil
}

func (s *AssetService) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateAsset applies the new field values and bumps the version whenever
// the stored media itself changed (a new storage key).
func (s *AssetService) UpdateAsset(ctx context.Context, id string, input ports.AssetInput) (*domain.Asset, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Kind != "" {
		kind, ok := domain.ParseAssetKind(input.Kind)
		if !ok {
			return nil, domain.ErrUnknownAssetKind
		}
		a.Kind = kind
	}
	if input.Status != "" {
		status := domain.AssetStatus(input.Status)
		if !domain.ValidAssetStatus(status) {
			return nil, domain.ErrUnknownAssetStatus
		}
		a.Status = status
	}
	if input.StorageKey != "" && input.StorageKey != a.StorageKey {
		a.StorageKey = input.StorageKey
		a.Version++
	}
	a.Language = input.Language
	a.Format = input.Format
	a.DurationSeconds = input.DurationSeconds
	a.SizeBytes = input.SizeBytes
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("asset_id", id).Msg("failed to update asset")
		return nil, err
	}
	return a, nil
}

func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("asset_id", id).Msg("asset deleted")
	return nil
}

func (s *AssetService) ListAssets(ctx context.Context, input ports.ListAssetsInput) (*ports.ListAssetsResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	items, total, err := s.repo.List(ctx, ports.ListAssetsFilter{
		MovieID:  input.MovieID,
		Kind:     input.Kind,
		Status:   input.Status,
		Language: input.Language,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListAssetsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
