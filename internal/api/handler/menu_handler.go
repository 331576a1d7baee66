package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

// menuForm carries the multipart fields for a menu item.
type menuForm struct {
	Name        string  `form:"name"        validate:"required"`
	Description string  `form:"description" validate:"required"`
	Price       float64 `form:"price"       validate:"required,gt=0"`
}

type menuResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Menu    *domain.Menu `json:"menu,omitempty"`
}

// MenuHandler handles menu endpoints under /api/v1/menu.
type MenuHandler struct {
	menuService ports.MenuService
}

func NewMenuHandler(menuService ports.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// Add creates a menu item on the caller's restaurant.
//
// @Summary      Add menu item
// @Tags         menu
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        name         formData  string  true  "Item name"
// @Param        description  formData  string  true  "Item description"
// @Param        price        formData  number  true  "Item price"
// @Param        image        formData  file    true  "Item image"
// @Success      201  {object}  menuResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/menu [post]
func (h *MenuHandler) Add(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var form menuForm
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

	menu, err := h.menuService.Add(c.Request().Context(), ports.AddMenuInput{
		OwnerID:     ownerID,
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Image:       image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, menuResponse{Success: true, Message: "Menu item added", Menu: menu})
}

// Edit updates a menu item on the caller's restaurant.
//
// @Summary      Edit menu item
// @Tags         menu
// @Accept       multipart/form-data
// @Produce      json
// @Security     CookieAuth
// @Param        id           path      string  true   "Menu item id"
// @Param        name         formData  string  true   "Item name"
// @Param        description  formData  string  true   "Item description"
// @Param        price        formData  number  true   "Item price"
// @Param        image        formData  file    false  "Replacement image"
// @Success      200  {object}  menuResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/menu/{id} [put]
func (h *MenuHandler) Edit(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var form menuForm
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

	menu, err := h.menuService.Edit(c.Request().Context(), ports.EditMenuInput{
		OwnerID:     ownerID,
		MenuID:      c.Param("id"),
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Image:       image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menuResponse{Success: true, Message: "Menu item updated", Menu: menu})
}
