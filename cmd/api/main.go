package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wzsamuels/budget-project/internal/config"
	"github.com/wzsamuels/budget-project/internal/database"
	"github.com/wzsamuels/budget-project/internal/events"
	"github.com/wzsamuels/budget-project/internal/lock"
	"github.com/wzsamuels/budget-project/internal/logger"
	"github.com/wzsamuels/budget-project/internal/router"
	"github.com/wzsamuels/budget-project/internal/services"
	"github.com/wzsamuels/budget-project/internal/validator"
)

// @title           Budget API
// @version         1.0
// @description     Paychecks, recurring expenses and transactions with a year-to-date dashboard and 12-month projection.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var locker lock.Locker = lock.NewLocalLocker()
	if appConfig.RedisAddress != "" {
		redisLocker, rdb, err := lock.Connect(ctx, appConfig.RedisAddress)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		locker = redisLocker
		log.Infow("Using redis projection lock", "address", appConfig.RedisAddress)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if appConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(appConfig.AMQPURL, appConfig.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		publisher = amqpPublisher
		log.Infow("Publishing audit events", "exchange", appConfig.AMQPExchange)
	}
	defer publisher.Close()

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	db := dbManager.DB()
	engine := router.New(router.Options{
		JWTSecret:             appConfig.JWTSecret,
		JWTIssuer:             appConfig.JWTIssuer,
		PipelineAPIKey:        appConfig.PipelineAPIKey,
		CORSAllowedOrigins:    appConfig.CORSAllowedOrigins,
		SeedDefaultCategories: appConfig.SeedDefaultCategories,

		Paychecks:         services.NewPaycheckService(db, locker, appConfig.ProjectionLockTTL),
		RecurringExpenses: services.NewRecurringExpenseService(db),
		Transactions:      services.NewTransactionService(db),
		Categories:        services.NewBudgetCategoryService(db),
		Reports:           services.NewReportService(db),
		Audit:             services.NewAuditService(db, publisher),
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting budget API server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
