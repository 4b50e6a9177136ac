package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// PersonInput carries the writable fields of a roster member.
type PersonInput struct {
	Name   string
	Kana   string
	Kind   string
	Email  string
	Phone  string
	Agency string
	Notes  string
	Active bool
}

// ListPersonnelInput carries all parameters for the list endpoint.
type ListPersonnelInput struct {
	Kind       string
	ActiveOnly bool
	Search     string
	Page       int
	Limit      int
}

// ListPersonnelResult is returned by ListPersonnel.
type ListPersonnelResult struct {
	Items      []*domain.Person
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PersonnelService defines use-case operations for the production roster.
type PersonnelService interface {
	CreatePerson(ctx context.Context, input PersonInput) (*domain.Person, error)
	GetPerson(ctx context.Context, id string) (*domain.Person, error)
	UpdatePerson(ctx context.Context, id string, input PersonInput) (*domain.Person, error)
	DeletePerson(ctx context.Context, id string) error
	ListPersonnel(ctx context.Context, input ListPersonnelInput) (*ListPersonnelResult, error)
}
