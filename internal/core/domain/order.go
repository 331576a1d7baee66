package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the fulfilment lifecycle stage of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// delivered and cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrUnknownStatus = errors.New("unknown order status")
var ErrInvalidTransition = errors.New("invalid status transition")

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CartItem snapshots a menu item at the moment the order was placed so later
// menu edits do not rewrite order history.
type CartItem struct {
	MenuID   string  `json:"menuId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// DeliveryDetails is the address snapshot captured at checkout.
type DeliveryDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// StatusHistoryEntry records a single status change on an order.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// Order references a restaurant and the ordering user. Mutable only through
// explicit status updates.
type Order struct {
	ID              string               `json:"id"`
	RestaurantID    string               `json:"restaurant"`
	UserID          string               `json:"user"`
	DeliveryDetails DeliveryDetails      `json:"deliveryDetails"`
	CartItems       []CartItem           `json:"cartItems"`
	TotalAmount     float64              `json:"totalAmount"`
	Status          OrderStatus          `json:"status"`
	StatusHistory   []StatusHistoryEntry `json:"statusHistory"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}
