package ports

import (
	"context"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

// UpdateProfileFields carries the mutable profile attributes. Zero values are
// written as-is; the handler validates required fields before the call.
type UpdateProfileFields struct {
	FullName       string
	Email          string
	Contact        string
	Address        string
	City           string
	Country        string
	ProfilePicture string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, fields UpdateProfileFields) (*domain.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
