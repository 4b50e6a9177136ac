package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

type PersonnelService struct {
	repo   ports.PersonnelRepository
	logger zerolog.Logger
}

func NewPersonnelService(repo ports.PersonnelRepository, logger zerolog.Logger) *PersonnelService {
	return &PersonnelService{repo: repo, logger: logger}
}

func (s *PersonnelService) CreatePerson(ctx context.Context, input ports.PersonInput) (*domain.Person, error) {
	kind, ok := domain.ParsePersonKind(input.Kind)
	if !ok {
		return nil, domain.ErrUnknownPersonKind
	}

	now := time.Now().UTC()
	p := &domain.Person{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Kana:      input.Kana,
		Kind:      kind,
		Email:     input.Email,
		Phone:     input.Phone,
		Agency:    input.Agency,
		Notes:     input.Notes,
		Active:    input.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create person")
		return nil, err
	}

	s.logger.Info().Str("person_id", p.ID).Str("kind", string(p.Kind)).Msg("person created")
	return p, nil
}

func (s *PersonnelService) GetPerson(ctx context.Context, id string) (*domain.Person, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PersonnelService) UpdatePerson(ctx context.Context, id string, input ports.PersonInput) (*domain.Person, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	kind, ok := domain.ParsePersonKind(input.Kind)
	if !ok {
		return nil, domain.ErrUnknownPersonKind
	}

	p.Name = input.Name
	p.Kana = input.Kana
	p.Kind = kind
	p.Email = input.Email
	p.Phone = input.Phone
	p.Agency = input.Agency
	p.Notes = input.Notes
	p.Active = input.Active
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("person_id", id).Msg("failed to update person")
		return nil, err
	}
	return p, nil
}

func (s *PersonnelService) DeletePerson(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("person_id", id).Msg("person deleted")
	return nil
}

func (s *PersonnelService) ListPersonnel(ctx context.Context, input ports.ListPersonnelInput) (*ports.ListPersonnelResult, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	if input.Kind != "" {
		if _, ok := domain.ParsePersonKind(input.Kind); !ok {
			return nil, domain.ErrUnknownPersonKind
		}
	}

	items, total, err := s.repo.List(ctx, ports.ListPersonnelFilter{
		Kind:       input.Kind,
		ActiveOnly: input.ActiveOnly,
		Search:     input.Search,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListPersonnelResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
