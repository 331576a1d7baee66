package ports

import (
	"context"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

// SearchFilter carries the free-text and cuisine criteria for a restaurant
// search. Text criteria combine disjunctively; SelectedCuisines is a
// conjunctive membership filter.
type SearchFilter struct {
	// SearchText matches restaurant name, city, or country (partial, case-insensitive).
	SearchText string
	// SearchQuery matches restaurant name or cuisines (partial, case-insensitive).
	SearchQuery string
	// SelectedCuisines restricts results to restaurants carrying any of these tags.
	SelectedCuisines []string
}

// RestaurantUpdate replaces the scalar fields of a restaurant as a whole.
// ImageURL is applied only when non-empty.
type RestaurantUpdate struct {
	RestaurantName string
	City           string
	Country        string
	DeliveryTime   int
	Cuisines       []string
	ImageURL       string
}

// RestaurantRepository defines persistence operations for restaurants.
type RestaurantRepository interface {
	// Create inserts a restaurant; returns domain.ErrRestaurantExists when the
	// owner already has one (unique index on the owner id).
	Create(ctx context.Context, r *domain.Restaurant) (*domain.Restaurant, error)
	FindByOwner(ctx context.Context, userID string) (*domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	Update(ctx context.Context, id string, update RestaurantUpdate) (*domain.Restaurant, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Restaurant, error)
}
