package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireOwner restricts a route to restaurant-owner accounts (admin flag).
func RequireOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, _ := c.Get("admin").(bool)
			if !admin {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"message": "restaurant owner account required",
				})
			}
			return next(c)
		}
	}
}
