package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

type DistributorService struct {
	repo   ports.DistributorRepository
	logger zerolog.Logger
}

func NewDistributorService(repo ports.DistributorRepository, logger zerolog.Logger) *DistributorService {
	return &DistributorService{repo: repo, logger: logger}
}

func (s *DistributorService) CreateDistributor(ctx context.Context, input ports.DistributorInput) (*domain.Distributor, error) {
	now := time.Now().UTC()
	d := &domain.Distributor{
		ID:          uuid.NewString(),
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error().Err(err).Msg("failed to create distributor")
		return nil, err
	}

	s.logger.Info().Str("distributor_id", d.ID).Str("name", d.Name).Msg("distributor created")
	return d, nil
}

func (s *DistributorService) GetDistributor(ctx context.Context, id string) (*domain.Distributor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DistributorService) UpdateDistributor(ctx context.Context, id string, input ports.DistributorInput) (*domain.Distributor, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Name = input.Name
	d.ContactName = input.ContactName
	d.Email = input.Email
	d.Phone = input.Phone
	d.Notes = input.Notes
	d.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error().Err(err).Str("distributor_id", id).Msg("failed to update distributor")
		return nil, err
	}
	return d, nil
}

func (s *DistributorService) DeleteDistributor(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("distributor_id", id).Msg("distributor deleted")
	return nil
}

func (s *DistributorService) ListDistributors(ctx context.Context, input ports.ListDistributorsInput) (*ports.ListDistributorsResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	items, total, err := s.repo.List(ctx, ports.ListDistributorsFilter{
		Search: input.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListDistributorsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
