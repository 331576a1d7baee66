package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

const resetTokenTTL = time.Hour

// AuthService implements signup, login, session introspection, profile
// updates, and the password-reset flow.
type AuthService struct {
	repo      ports.UserRepository
	tokens    ports.ResetTokenStore
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	clientURL string
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	tokens ports.ResetTokenStore,
	mailer ports.Mailer,
	jwtSecret string,
	tokenTTL time.Duration,
	clientURL string,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		clientURL: clientURL,
		log:       log,
	}
}

func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (string, *domain.User, error) {
	if input.Email == "" || input.Password == "" || input.FullName == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Contact:      input.Contact,
		Admin:        input.Admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("account created")
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) CheckAuth(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, fields ports.UpdateProfileFields) (*domain.User, error) {
	return s.repo.UpdateProfile(ctx, userID, fields)
}

// ForgotPassword stores a single-use reset token and mails a reset link. The
// response is identical whether or not the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.tokens.Save(ctx, token, user.ID, resetTokenTTL); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.clientURL, token)
	body := fmt.Sprintf("Hi %s,\n\nFollow this link to reset your password:\n%s\n\nThe link expires in one hour.", user.FullName, link)
	if err := s.mailer.Send(ctx, user.Email, "Reset your password", body); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to send reset email")
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return domain.ErrResetTokenInvalid
	}

	userID, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	// Token is single-use; the TTL still bounds a failed delete.
	if err := s.tokens.Delete(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete reset token")
	}

	s.log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"admin":   user.Admin,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
