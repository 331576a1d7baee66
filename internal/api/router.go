package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickplate/food-ordering-api/internal/api/handler"
	"github.com/quickplate/food-ordering-api/internal/api/middleware"
	"github.com/quickplate/food-ordering-api/internal/core/ports"
	"github.com/quickplate/food-ordering-api/internal/core/service"
	"github.com/quickplate/food-ordering-api/internal/infrastructure/config"
	mongorepo "github.com/quickplate/food-ordering-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/quickplate/food-ordering-api/internal/infrastructure/db/redis"
	"github.com/quickplate/food-ordering-api/internal/infrastructure/mail"
	"github.com/quickplate/food-ordering-api/internal/infrastructure/storage"
)

const sessionTokenTTL = 24 * time.Hour

// NewRouter builds the Echo instance with all routes registered and all
// dependencies wired. The notifier is constructed by the caller so its
// worker lifecycle is owned by main.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	notifier ports.OrderNotifier,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("food_ordering"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	restaurantRepo := mongorepo.NewRestaurantRepository(db)
	menuRepo := mongorepo.NewMenuRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)

	resetTokens := redisinfra.NewResetTokenStore(rdb)
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:   cfg.SMTP.Host,
		Port:   cfg.SMTP.Port,
		User:   cfg.SMTP.User,
		Pass:   cfg.SMTP.Pass,
		Sender: cfg.SMTP.Sender,
	})
	images := storage.NewS3ImageStore(storage.Config{
		Bucket:        cfg.S3.Bucket,
		Region:        cfg.S3.Region,
		Endpoint:      cfg.S3.Endpoint,
		AccessKeyID:   cfg.S3.AccessKeyID,
		SecretKey:     cfg.S3.SecretKey,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	})

	authService := service.NewAuthService(userRepo, resetTokens, mailer, cfg.JWTSecret, sessionTokenTTL, cfg.ClientURL, log)
	restaurantService := service.NewRestaurantService(restaurantRepo, menuRepo, images, log)
	menuService := service.NewMenuService(menuRepo, restaurantRepo, images, log)
	orderService := service.NewOrderService(orderRepo, restaurantRepo, menuRepo, userRepo, notifier, log)

	secureCookie := cfg.Env == "production"
	userHandler := handler.NewUserHandler(authService, secureCookie)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService, orderService)
	menuHandler := handler.NewMenuHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret)
	ownerOnly := middleware.RequireOwner()

	// --- User routes ---
	user := e.Group("/api/v1/user")
	user.POST("/signup", userHandler.Signup)
	user.POST("/login", userHandler.Login)
	user.POST("/logout", userHandler.Logout)
	user.POST("/forgot-password", userHandler.ForgotPassword)
	user.POST("/reset-password/:token", userHandler.ResetPassword)
	user.GET("/check-auth", userHandler.CheckAuth, auth)
	user.PUT("/profile/update", userHandler.UpdateProfile, auth)

	// --- Restaurant routes ---
	restaurant := e.Group("/api/v1/restaurant")
	restaurant.GET("/search/:searchText", restaurantHandler.Search)
	restaurant.POST("", restaurantHandler.Create, auth, ownerOnly)
	restaurant.GET("", restaurantHandler.GetOwn, auth, ownerOnly)
	restaurant.PUT("", restaurantHandler.Update, auth, ownerOnly)
	restaurant.GET("/order", restaurantHandler.ListOrders, auth, ownerOnly)
	restaurant.PATCH("/order/:orderId/status", restaurantHandler.UpdateOrderStatus, auth, ownerOnly)
	restaurant.GET("/:id", restaurantHandler.GetByID)

	// --- Menu routes ---
	menu := e.Group("/api/v1/menu", auth, ownerOnly)
	menu.POST("", menuHandler.Add)
	menu.PUT("/:id", menuHandler.Edit)

	// --- Order routes ---
	order := e.Group("/api/v1/order", auth)
	order.POST("/checkout", orderHandler.Checkout)
	order.GET("", orderHandler.List)

	// --- Ops surface ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Static SPA fallback; API routes above take precedence ---
	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  cfg.StaticDir,
		HTML5: true,
	}))

	return e
}
