package ports

import (
	"context"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

// MenuRepository defines persistence operations for menu items.
type MenuRepository interface {
	Create(ctx context.Context, m *domain.Menu) (*domain.Menu, error)
	FindByID(ctx context.Context, id string) (*domain.Menu, error)
	// ListByRestaurant returns the restaurant's menu items sorted newest-first.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Menu, error)
	Update(ctx context.Context, m *domain.Menu) (*domain.Menu, error)
}

// AddMenuInput carries the multipart form fields for a new menu item.
type AddMenuInput struct {
	OwnerID     string
	Name        string
	Description string
	Price       float64
	Image       *ImageUpload
}

// EditMenuInput carries an edit to an existing item; Image is optional.
type EditMenuInput struct {
	OwnerID     string
	MenuID      string
	Name        string
	Description string
	Price       float64
	Image       *ImageUpload
}

// MenuService defines owner-scoped menu management.
type MenuService interface {
	Add(ctx context.Context, input AddMenuInput) (*domain.Menu, error)
	Edit(ctx context.Context, input EditMenuInput) (*domain.Menu, error)
}
