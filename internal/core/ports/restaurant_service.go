package ports

import (
	"context"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

// CreateRestaurantInput carries the multipart form fields for creating a
// restaurant. Cuisines arrives as the raw JSON array string from the form;
// the service parses it before any external call or write.
type CreateRestaurantInput struct {
	OwnerID        string
	RestaurantName string
	City           string
	Country        string
	DeliveryTime   int
	CuisinesJSON   string
	Image          *ImageUpload
}

// UpdateRestaurantInput mirrors CreateRestaurantInput; Image is optional and
// replaces the stored image only when supplied.
type UpdateRestaurantInput struct {
	OwnerID        string
	RestaurantName string
	City           string
	Country        string
	DeliveryTime   int
	CuisinesJSON   string
	Image          *ImageUpload
}

// RestaurantService defines the owner-scoped restaurant use cases plus the
// public search and detail lookups.
type RestaurantService interface {
	Create(ctx context.Context, input CreateRestaurantInput) (*domain.Restaurant, error)
	// GetByOwner returns the caller's restaurant with its menus expanded.
	GetByOwner(ctx context.Context, ownerID string) (*domain.Restaurant, error)
	Update(ctx context.Context, input UpdateRestaurantInput) (*domain.Restaurant, error)
	// GetByID returns any restaurant by id with menus expanded newest-first.
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Restaurant, error)
}
