package auth

import (
	"context"

	"intraportal/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, email, name, sector, role string) (string, error)
}

// ProfileInitializer creates the zeroed points profile for a user the
// first time they authenticate.
type ProfileInitializer interface {
	InitUser(ctx context.Context, user *domain.User) (*domain.UserAggregate, error)
}
