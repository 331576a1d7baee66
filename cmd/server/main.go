// Command server runs the food-ordering HTTP API.
//
// @title        QuickPlate API
// @version      1.0
// @description  Food ordering platform: accounts, restaurants, menus and orders.
// @BasePath     /
//
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        token
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickplate/food-ordering-api/internal/api"
	"github.com/quickplate/food-ordering-api/internal/infrastructure/config"
	mongorepo "github.com/quickplate/food-ordering-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/quickplate/food-ordering-api/internal/infrastructure/db/redis"
	"github.com/quickplate/food-ordering-api/internal/infrastructure/mail"
	"github.com/quickplate/food-ordering-api/internal/infrastructure/notify"
	"github.com/quickplate/food-ordering-api/pkg/logger"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
	notifyWorkers   = 4
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	mongoClient, db, err := mongorepo.Connect(startupCtx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisinfra.Connect(startupCtx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	if err := ensureIndexes(startupCtx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:   cfg.SMTP.Host,
		Port:   cfg.SMTP.Port,
		User:   cfg.SMTP.User,
		Pass:   cfg.SMTP.Pass,
		Sender: cfg.SMTP.Sender,
	})
	dispatcher := notify.NewDispatcher(notifyWorkers, mailer, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongorepo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongorepo.NewRestaurantRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongorepo.NewOrderRepository(db).EnsureIndexes(ctx)
}
