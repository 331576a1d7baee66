package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrResetTokenInvalid = errors.New("reset token invalid or expired")

// User models an account on the platform. Admin marks restaurant owners;
// customers keep the flag unset.
type User struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullname"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Contact        string    `json:"contact"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	ProfilePicture string    `json:"profilePicture"`
	Admin          bool      `json:"admin"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
