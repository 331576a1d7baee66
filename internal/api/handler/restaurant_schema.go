package handler

import "github.com/quickplate/food-ordering-api/internal/core/domain"

// restaurantForm carries the multipart fields for creating or replacing a
// restaurant. Cuisines is the raw JSON array string from the form; the
// service parses and rejects it before any write. All scalar fields are
// required because updates replace the document as a whole.
type restaurantForm struct {
	RestaurantName string `form:"restaurantName" validate:"required"`
	City           string `form:"city"           validate:"required"`
	Country        string `form:"country"        validate:"required"`
	DeliveryTime   int    `form:"deliveryTime"   validate:"required,min=1"`
	Cuisines       string `form:"cuisines"       validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type restaurantResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Restaurant *domain.Restaurant `json:"restaurant,omitempty"`
}

type restaurantListResponse struct {
	Success bool                 `json:"success"`
	Data    []*domain.Restaurant `json:"data"`
}

type orderStatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
