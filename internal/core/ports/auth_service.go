package ports

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
)

// RegisterInput carries the data needed to create a user account.
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
	Role        string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
