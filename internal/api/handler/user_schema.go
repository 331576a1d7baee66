package handler

import "github.com/quickplate/food-ordering-api/internal/core/domain"

type signupRequest struct {
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Contact  string `json:"contact"  validate:"required"`
	// Admin marks the account as a restaurant owner.
	Admin bool `json:"admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type updateProfileRequest struct {
	FullName       string `json:"fullname" validate:"required"`
	Email          string `json:"email"    validate:"required,email"`
	Contact        string `json:"contact"  validate:"required"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Country        string `json:"country"`
	ProfilePicture string `json:"profilePicture"`
}

// userResponse is the envelope returned by all user endpoints.
type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}
