package ports

import (
	"context"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

// SignupInput carries everything needed to open an account.
type SignupInput struct {
	FullName string
	Email    string
	Password string
	Contact  string
	// Admin marks the account as a restaurant owner.
	Admin bool
}

// AuthService defines account lifecycle operations: signup, login, session
// introspection, profile updates, and the two-step password-reset flow.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CheckAuth(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, fields UpdateProfileFields) (*domain.User, error)
	// ForgotPassword never reveals whether the email exists; when it does, a
	// reset token is stored and mailed out of band.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
