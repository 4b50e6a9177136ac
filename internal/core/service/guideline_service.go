package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

type GuidelineService struct {
	repo   ports.GuidelineRepository
	logger zerolog.Logger
}

func NewGuidelineService(repo ports.GuidelineRepository, logger zerolog.Logger) *GuidelineService {
	return &GuidelineService{repo: repo, logger: logger}
}

func (s *GuidelineService) CreateGuideline(ctx context.Context, input ports.GuidelineInput) (*domain.Guideline, error) {
	now := time.Now().UTC()
	g := &domain.Guideline{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Category:  input.Category,
		Body:      input.Body,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		s.logger.Error().Err(err).Msg("failed to create guideline")
		return nil, err
	}

	s.logger.Info().Str("guideline_id", g.ID).Str("title", g.Title).Msg("guideline created")
	return g, nil
}

func (s *GuidelineService) GetGuideline(ctx context.Context, id string) (*domain.Guideline, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateGuideline replaces the document content and bumps its version.
func (s *GuidelineService) UpdateGuideline(ctx context.Context, id string, input ports.GuidelineInput) (*domain.Guideline, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g.Title = input.Title
	g.Category = input.Category
	g.Body = input.Body
	g.Version++
	g.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, g); err != nil {
		s.logger.Error().Err(err).Str("guideline_id", id).Msg("failed to update guideline")
		return nil, err
	}
	return g, nil
}

func (s *GuidelineService) DeleteGuideline(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("guideline_id", id).Msg("guideline deleted")
	return nil
}

func (s *GuidelineService) ListGuidelines(ctx context.Context, input ports.ListGuidelinesInput) (*ports.ListGuidelinesResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	items, total, err := s.repo.List(ctx, ports.ListGuidelinesFilter{
		Category: input.Category,
		Search:   input.Search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListGuidelinesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
