package domain

import (
	"errors"
	"time"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")
var ErrRestaurantExists = errors.New("restaurant already exists for this user")
var ErrInvalidCuisines = errors.New("invalid cuisines format")
var ErrImageRequired = errors.New("restaurant image is required")

// Restaurant is owned by exactly one user; the owning user id carries a
// unique index so a second create for the same owner fails at the database.
type Restaurant struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user"`
	RestaurantName string    `json:"restaurantName"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	DeliveryTime   int       `json:"deliveryTime"`
	Cuisines       []string  `json:"cuisines"`
	ImageURL       string    `json:"imageUrl"`
	Menus          []Menu    `json:"menus"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
