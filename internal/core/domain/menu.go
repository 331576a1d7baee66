package domain

import (
	"errors"
	"time"
)

var ErrMenuNotFound = errors.New("menu not found")

// Menu is a single item on a restaurant's menu. Items live in their own
// collection keyed by restaurant id and are expanded onto Restaurant on read.
type Menu struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
