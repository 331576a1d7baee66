package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickplate/food-ordering-api/internal/api/metrics"
	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

type checkoutItemRequest struct {
	MenuID   string `json:"menuId"   validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type checkoutRequest struct {
	RestaurantID    string                `json:"restaurantId" validate:"required"`
	CartItems       []checkoutItemRequest `json:"cartItems"    validate:"required,min=1,dive"`
	DeliveryDetails deliveryDetailsInput  `json:"deliveryDetails"`
}

type deliveryDetailsInput struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Contact string `json:"contact" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city"    validate:"required"`
	Country string `json:"country" validate:"required"`
}

type orderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Order   *domain.Order `json:"order,omitempty"`
}

type orderListResponse struct {
	Success bool                `json:"success"`
	Orders  []ports.OrderDetail `json:"orders"`
}

// OrderHandler handles customer-side order endpoints under /api/v1/order.
type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout places an order against a restaurant's current menu.
//
// @Summary      Place an order
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      checkoutRequest  true  "Cart and delivery details"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/order/checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.CheckoutItem, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, ports.CheckoutItem{MenuID: item.MenuID, Quantity: item.Quantity})
	}

	order, err := h.orderService.Checkout(c.Request().Context(), ports.CheckoutInput{
		UserID:       userID,
		RestaurantID: req.RestaurantID,
		Items:        items,
		DeliveryDetails: domain.DeliveryDetails{
			Name:    req.DeliveryDetails.Name,
			Email:   req.DeliveryDetails.Email,
			Contact: req.DeliveryDetails.Contact,
			Address: req.DeliveryDetails.Address,
			City:    req.DeliveryDetails.City,
			Country: req.DeliveryDetails.Country,
		},
	})
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, orderResponse{Success: true, Message: "Order placed", Order: order})
}

// List returns the caller's own orders, newest first.
//
// @Summary      List own orders
// @Tags         order
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  orderListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/order [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListResponse{Success: true, Orders: orders})
}
