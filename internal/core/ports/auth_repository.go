package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// CountByRole returns how many users hold the given role. Used by the
	// bootstrap path to decide whether a first admin must be created.
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}
