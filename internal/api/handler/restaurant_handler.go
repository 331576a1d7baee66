package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quickplate/food-ordering-api/internal/api/metrics"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

// RestaurantHandler handles restaurant endpoints under /api/v1/restaurant.
type RestaurantHandler struct {
	restaurantService ports.RestaurantService
	orderService      ports.OrderService
}

func NewRestaurantHandler(restaurantService ports.RestaurantService, orderService ports.OrderService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService, orderService: orderService}
}

// Create registers the caller's restaurant.
//
// @Summary      Create restaurant
// @Tags         restaurant
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        restaurantName  formData  string  true  "Restaurant name"
// @Param        city            formData  string  true  "City"
// @Param        country         formData  string  true  "Country"
// @Param        deliveryTime    formData  int     true  "Delivery time in minutes"
// @Param        cuisines        formData  string  true  "JSON array of cuisines"
// @Param        image           formData  file    true  "Banner image"
// @Success      201  {object}  restaurantResponse
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/v1/restaurant [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var form restaurantForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, closeImage, err := formImage(c, "image")
	if err != nil {
		return err
	}
	if closeImage != nil {
		defer closeImage()
	}

	restaurant, err := h.restaurantService.Create(c.Request().Context(), ports.CreateRestaurantInput{
		OwnerID:        ownerID,
		RestaurantName: form.RestaurantName,
		City:           form.City,
		Country:        form.Country,
		DeliveryTime:   form.DeliveryTime,
		CuisinesJSON:   form.Cuisines,
		Image:          image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, restaurantResponse{Success: true, Message: "Restaurant created", Restaurant: restaurant})
}

// GetOwn returns the caller's restaurant with its menus.
//
// @Summary      Get own restaurant
// @Tags         restaurant
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  restaurantResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/restaurant [get]
func (h *RestaurantHandler) GetOwn(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	restaurant, err := h.restaurantService.GetByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurantResponse{Success: true, Restaurant: restaurant})
}

// Update replaces the caller's restaurant details.
//
// @Summary      Update restaurant
// @Tags         restaurant
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        restaurantName  formData  string  true   "Restaurant name"
// @Param        city            formData  string  true   "City"
// @Param        country         formData  string  true   "Country"
// @Param        deliveryTime    formData  int     true   "Delivery time in minutes"
// @Param        cuisines        formData  string  true   "JSON array of cuisines"
// @Param        image           formData  file    false  "Replacement banner image"
// @Success      200  {object}  restaurantResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/restaurant [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var form restaurantForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, closeImage, err := optionalFormImage(c, "image")
	if err != nil {
		return err
	}
	if closeImage != nil {
		defer closeImage()
	}

	restaurant, err := h.restaurantService.Update(c.Request().Context(), ports.UpdateRestaurantInput{
		OwnerID:        ownerID,
		RestaurantName: form.RestaurantName,
		City:           form.City,
		Country:        form.Country,
		DeliveryTime:   form.DeliveryTime,
		CuisinesJSON:   form.Cuisines,
		Image:          image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurantResponse{Success: true, Message: "Restaurant updated", Restaurant: restaurant})
}

// ListOrders returns all orders placed against the caller's restaurant.
//
// @Summary      List restaurant orders
// @Tags         restaurant
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  orderListResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/restaurant/order [get]
func (h *RestaurantHandler) ListOrders(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListForOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListResponse{Success: true, Orders: orders})
}

// UpdateOrderStatus moves an order along the status state machine.
//
// @Summary      Update order status
// @Tags         restaurant
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        orderId  path      string                    true  "Order id"
// @Param        body     body      updateOrderStatusRequest  true  "Target status"
// @Success      200      {object}  orderStatusResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /api/v1/restaurant/order/{orderId}/status [patch]
func (h *RestaurantHandler) UpdateOrderStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := h.orderService.UpdateStatus(c.Request().Context(), c.Param("orderId"), req.Status)
	if err != nil {
		return err
	}

	metrics.OrderStatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	return c.JSON(http.StatusOK, orderStatusResponse{Success: true, Status: string(status), Message: "Status updated"})
}

// Search finds restaurants by free text and cuisine filters.
//
// @Summary      Search restaurants
// @Tags         restaurant
// @Produce      json
// @Param        searchText        path   string  true   "Text matched against name, city and country"
// @Param        searchQuery       query  string  false  "Text matched against name and cuisines"
// @Param        selectedCuisines  query  string  false  "Comma-separated cuisines, all required"
// @Success      200  {object}  restaurantListResponse
// @Router       /api/v1/restaurant/search/{searchText} [get]
func (h *RestaurantHandler) Search(c echo.Context) error {
	filter := ports.SearchFilter{
		SearchText:  c.Param("searchText"),
		SearchQuery: c.QueryParam("searchQuery"),
	}
	if raw := c.QueryParam("selectedCuisines"); raw != "" {
		for _, cuisine := range strings.Split(raw, ",") {
			if cuisine = strings.TrimSpace(cuisine); cuisine != "" {
				filter.SelectedCuisines = append(filter.SelectedCuisines, cuisine)
			}
		}
	}

	restaurants, err := h.restaurantService.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	metrics.RestaurantSearchesTotal.Inc()
	return c.JSON(http.StatusOK, restaurantListResponse{Success: true, Data: restaurants})
}

// GetByID returns a single restaurant with its menus.
//
// @Summary      Get restaurant by id
// @Tags         restaurant
// @Produce      json
// @Param        id  path  string  true  "Restaurant id"
// @Success      200  {object}  restaurantResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/restaurant/{id} [get]
func (h *RestaurantHandler) GetByID(c echo.Context) error {
	restaurant, err := h.restaurantService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, restaurantResponse{Success: true, Restaurant: restaurant})
}
