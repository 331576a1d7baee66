package ports

import (
	"context"
	"time"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// UpdateStatus sets the status and appends a history entry in one write.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) error
}

// CheckoutItem is one cart line in a checkout request.
type CheckoutItem struct {
	MenuID   string
	Quantity int
}

// CheckoutInput carries everything needed to place an order.
type CheckoutInput struct {
	UserID          string
	RestaurantID    string
	Items           []CheckoutItem
	DeliveryDetails domain.DeliveryDetails
}

// OrderDetail is an order with its restaurant and customer expanded.
type OrderDetail struct {
	Order      *domain.Order      `json:"order"`
	Restaurant *domain.Restaurant `json:"restaurant"`
	Customer   *domain.User       `json:"customer"`
}

// OrderService defines order placement, listing, and the owner-side status
// mutation guarded by the status state machine.
type OrderService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error)
	// ListForOwner returns all orders of the caller's restaurant, restaurant
	// and customer details expanded. Fails when the caller owns no restaurant.
	ListForOwner(ctx context.Context, ownerID string) ([]OrderDetail, error)
	ListForUser(ctx context.Context, userID string) ([]OrderDetail, error)
	UpdateStatus(ctx context.Context, orderID, status string) (domain.OrderStatus, error)
}
