package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rental-backend/config"
	"rental-backend/controllers"
	"rental-backend/notification"
	"rental-backend/routes"
	"rental-backend/services"
	"rental-backend/utils"
	"rental-backend/validation"
)

func main() {
	// Load .env (optional)
	envErr := godotenv.Load()

	cfg := config.MustLoad()
	log := utils.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)
	if envErr != nil {
		log.Info(".env not loaded, using process environment", slog.String("reason", envErr.Error()))
	}
	gin.SetMode(cfg.Gin.Mode)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	store, err := config.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("closing storage", slog.String("error", err.Error()))
		}
	}()
	log.Info("storage ready", slog.String("driver", cfg.Storage.Driver))

	telegram, err := notification.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, log)
	if err != nil {
		return err
	}
	email := notification.NewEmailNotifier(notification.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		FromName: cfg.SMTP.FromName,
	}, log)
	notifier := notification.Multi{telegram, email}

	// Initialize services
	pricing := services.NewPricingModel(validation.New(), time.Now)
	propertyService := services.NewPropertyService(store, log)
	bookingService := services.NewBookingService(store, store, pricing, notifier, time.Now, log)
	reviewService := services.NewReviewService(store, time.Now, log)

	if cfg.Catalog.Seed {
		if err := config.SeedCatalog(ctx, cfg.Catalog, propertyService, reviewService); err != nil {
			return err
		}
	}

	// Initialize controllers
	propertyController := controllers.NewPropertyController(propertyService, log)
	bookingController := controllers.NewBookingController(bookingService, log)
	reviewController := controllers.NewReviewController(reviewService, log)

	router := routes.SetupRouter(propertyController, bookingController, reviewController, cfg.CORS.Origins, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
