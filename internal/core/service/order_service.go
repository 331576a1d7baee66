package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

// OrderService implements checkout, order listing, and the owner-side status
// mutation guarded by the order status state machine.
type OrderService struct {
	orders      ports.OrderRepository
	restaurants ports.RestaurantRepository
	menus       ports.MenuRepository
	users       ports.UserRepository
	notifier    ports.OrderNotifier
	log         zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	restaurants ports.RestaurantRepository,
	menus ports.MenuRepository,
	users ports.UserRepository,
	notifier ports.OrderNotifier,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		menus:       menus,
		users:       users,
		notifier:    notifier,
		log:         log,
	}
}

// Checkout places an order. Cart lines are snapshotted against the
// restaurant's current menu so later menu edits do not rewrite order history.
func (s *OrderService) Checkout(ctx context.Context, input ports.CheckoutInput) (*domain.Order, error) {
	restaurant, err := s.restaurants.FindByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, 0, len(input.Items))
	var total float64
	for _, line := range input.Items {
		menu, err := s.menus.FindByID(ctx, line.MenuID)
		if err != nil {
			return nil, err
		}
		if menu.RestaurantID != restaurant.ID {
			return nil, domain.ErrMenuNotFound
		}
		items = append(items, domain.CartItem{
			MenuID:   menu.ID,
			Name:     menu.Name,
			Price:    menu.Price,
			Quantity: line.Quantity,
		})
		total += menu.Price * float64(line.Quantity)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		RestaurantID:    restaurant.ID,
		UserID:          input.UserID,
		DeliveryDetails: input.DeliveryDetails,
		CartItems:       items,
		TotalAmount:     total,
		Status:          domain.StatusPending,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", created.ID).Str("restaurant_id", restaurant.ID).Msg("order placed")
	return created, nil
}

func (s *OrderService) ListForOwner(ctx context.Context, ownerID string) ([]ports.OrderDetail, error) {
	restaurant, err := s.restaurants.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	details := make([]ports.OrderDetail, 0, len(orders))
	for _, o := range orders {
		customer, err := s.users.FindByID(ctx, o.UserID)
		if err != nil && err != domain.ErrUserNotFound {
			return nil, err
		}
		details = append(details, ports.OrderDetail{
			Order:      o,
			Restaurant: restaurant,
			Customer:   customer,
		})
	}
	return details, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]ports.OrderDetail, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]ports.OrderDetail, 0, len(orders))
	for _, o := range orders {
		restaurant, err := s.restaurants.FindByID(ctx, o.RestaurantID)
		if err != nil && err != domain.ErrRestaurantNotFound {
			return nil, err
		}
		details = append(details, ports.OrderDetail{Order: o, Restaurant: restaurant})
	}
	return details, nil
}

// UpdateStatus validates the requested status against the state machine
// before writing, then hands the customer notification to the async notifier.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (domain.OrderStatus, error) {
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return "", err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	if !order.Status.CanTransitionTo(next) {
		return "", domain.ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next, time.Now().UTC()); err != nil {
		return "", err
	}

	s.log.Info().Str("order_id", orderID).Str("status", string(next)).Msg("order status updated")

	s.notifyCustomer(ctx, order, next)
	return next, nil
}

// notifyCustomer enqueues an email notification; a missing customer or
// restaurant record downgrades to a log line, never a request failure.
func (s *OrderService) notifyCustomer(ctx context.Context, order *domain.Order, status domain.OrderStatus) {
	customer, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("skipping status notification")
		return
	}
	restaurantName := ""
	if restaurant, err := s.restaurants.FindByID(ctx, order.RestaurantID); err == nil {
		restaurantName = restaurant.RestaurantName
	}

	s.notifier.Notify(ports.OrderNotification{
		OrderID:       order.ID,
		CustomerEmail: customer.Email,
		CustomerName:  customer.FullName,
		Restaurant:    restaurantName,
		Status:        string(status),
	})
}
