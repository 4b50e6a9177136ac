package ports

import (
	"context"
	"net/netip"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// AllowlistRepository persists the admin-managed IP allow-list.
type AllowlistRepository interface {
	Load(ctx context.Context) ([]domain.AllowlistEntry, error)
	// Replace swaps the whole list atomically. The list is small and edited
	// as a unit in the settings UI, so wholesale replace is the contract.
	Replace(ctx context.Context, entries []domain.AllowlistEntry) error
}

// AllowlistInput is one entry submitted by the settings UI.
type AllowlistInput struct {
	CIDR string
	Note string
}

// AllowlistService manages the allow-list and answers enforcement checks.
type AllowlistService interface {
	List(ctx context.Context) ([]domain.AllowlistEntry, error)
	// Replace validates every CIDR, persists the new list, and refreshes the
	// in-memory matcher.
	Replace(ctx context.Context, entries []AllowlistInput, addedBy string) ([]domain.AllowlistEntry, error)
	// Allowed reports whether addr may reach the API. An empty list allows
	// everyone and loopback is always allowed, so an admin cannot lock
	// themselves out.
	Allowed(addr netip.Addr) bool
	Enforced() bool
	// Refresh reloads the matcher from the store (startup and after writes).
	Refresh(ctx context.Context) error
}
