package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quickplate/food-ordering-api/internal/api/middleware"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

const sessionTTL = 24 * time.Hour

// UserHandler handles account lifecycle endpoints under /api/v1/user.
type UserHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

func NewUserHandler(authService ports.AuthService, secureCookie bool) *UserHandler {
	return &UserHandler{authService: authService, secureCookie: secureCookie}
}

// Signup creates an account and opens a session.
//
// @Summary      Sign up
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/user/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Contact:  req.Contact,
		Admin:    req.Admin,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, userResponse{Success: true, Message: "Account created", User: user})
}

// Login verifies credentials and opens a session.
//
// @Summary      Log in
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: "Logged in", User: user})
}

// Logout clears the session cookie.
//
// @Summary      Log out
// @Tags         user
// @Produce      json
// @Success      200  {object}  userResponse
// @Router       /api/v1/user/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: "Logged out"})
}

// CheckAuth returns the authenticated user for the current session.
//
// @Summary      Check authentication
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/user/check-auth [get]
func (h *UserHandler) CheckAuth(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CheckAuth(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// ForgotPassword starts the reset flow. The response never reveals whether
// the email exists.
//
// @Summary      Request a password reset
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  userResponse
// @Router       /api/v1/user/forgot-password [post]
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: "If the account exists, a reset link has been sent"})
}

// ResetPassword completes the reset flow with the token from the email link.
//
// @Summary      Reset password
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        token  path      string                true  "Reset token"
// @Param        body   body      resetPasswordRequest  true  "New password"
// @Success      200    {object}  userResponse
// @Failure      400    {object}  errorResponse
// @Router       /api/v1/user/reset-password/{token} [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: "Password updated, please log in again"})
}

// UpdateProfile replaces the caller's profile fields.
//
// @Summary      Update profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/user/profile/update [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileFields{
		FullName:       req.FullName,
		Email:          req.Email,
		Contact:        req.Contact,
		Address:        req.Address,
		City:           req.City,
		Country:        req.Country,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: "Profile updated", User: user})
}

func (h *UserHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *UserHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
