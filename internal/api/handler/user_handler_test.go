package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/quickplate/food-ordering-api/internal/api/middleware"
	"github.com/quickplate/food-ordering-api/internal/core/domain"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn        func(ctx context.Context, input ports.SignupInput) (string, *domain.User, error)
	loginFn         func(ctx context.Context, email, password string) (string, *domain.User, error)
	checkAuthFn     func(ctx context.Context, userID string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, userID string, fields ports.UpdateProfileFields) (*domain.User, error)
	forgotFn        func(ctx context.Context, email string) error
	resetFn         func(ctx context.Context, token, newPassword string) error
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput) (string, *domain.User, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CheckAuth(ctx context.Context, userID string) (*domain.User, error) {
	return s.checkAuthFn(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, fields ports.UpdateProfileFields) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, fields)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.resetFn(ctx, token, newPassword)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	return nil
}

func TestUserHandler_Signup_SetsSessionCookie(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(_ context.Context, input ports.SignupInput) (string, *domain.User, error) {
			if input.Email != "alice@example.com" || !input.Admin {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "signed-token", &domain.User{ID: "user-1", FullName: input.FullName, Email: input.Email, Admin: true}, nil
		},
	}
	h := NewUserHandler(stub, false)

	body := strings.NewReader(`{"fullname":"Alice Doe","email":"alice@example.com","password":"s3cret1","contact":"555-0100","admin":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/signup", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "signed-token" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestUserHandler_Signup_RejectsInvalidPayload(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubAuthService{}, false)

	body := strings.NewReader(`{"fullname":"Bob","email":"not-an-email","password":"x","contact":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/signup", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewUserHandler(stub, false)

	body := strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected domain error to propagate, got %v", err)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("cookie must not be set on failed login")
	}
}

func TestUserHandler_Logout_ClearsCookie(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubAuthService{}, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("expected expiring cookie")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", cookie)
	}
}

func TestUserHandler_CheckAuth(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		checkAuthFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: userID, Email: "alice@example.com"}, nil
		},
	}
	h := NewUserHandler(stub, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/check-auth", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user-1")

	if err := h.CheckAuth(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_CheckAuth_MissingClaims(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubAuthService{}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/check-auth", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CheckAuth(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_ResetPassword_PassesTokenParam(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		resetFn: func(_ context.Context, token, newPassword string) error {
			if token != "tok-123" || newPassword != "newpass" {
				t.Fatalf("unexpected args: %s %s", token, newPassword)
			}
			return nil
		},
	}
	h := NewUserHandler(stub, false)

	body := strings.NewReader(`{"newPassword":"newpass"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/reset-password/tok-123", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues("tok-123")

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
