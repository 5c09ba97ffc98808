package auth

import (
	"context"

	"kbtassist/internal/domain"
)

// UserRepository defines the persistence operations the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error
	ListTeamForUser(ctx context.Context, userID int64) ([]domain.User, error)
}
