package auth

import (
	"context"

	"tourquote/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TokenGenerator interface {
	GenerateToken(userID int64, email, role string) (string, error)
}
