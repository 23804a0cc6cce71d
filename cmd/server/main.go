package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/JibinB02/pehlahath/internal/api"
	"github.com/JibinB02/pehlahath/internal/config"
	"github.com/JibinB02/pehlahath/internal/infrastructure/auth"
	"github.com/JibinB02/pehlahath/internal/infrastructure/client"
	"github.com/JibinB02/pehlahath/internal/repository"
	"github.com/JibinB02/pehlahath/internal/usecase"
	"github.com/JibinB02/pehlahath/internal/worker"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := runMigrations(cfg); err != nil {
		return err
	}
	logger.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := client.NewPostgresClient(ctx, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("connected to postgres")

	rabbit, err := client.NewRabbitMQClient(cfg.RabbitMQURL())
	if err != nil {
		return err
	}
	defer rabbit.Close()
	logger.Info("connected to rabbitmq")

	userRepo := repository.NewUserRepository(db.Pool)
	taskRepo := repository.NewTaskRepository(db.Pool)
	reportRepo := repository.NewReportRepository(db.Pool)
	resourceRepo := repository.NewResourceRepository(db.Pool)
	auditRepo := repository.NewTaskAuditRepository(db.Pool)

	tokens := auth.NewJWTManager(cfg.JWTSecret)
	passwords := auth.NewPasswordManager()

	taskService := usecase.NewTaskService(taskRepo, userRepo, rabbit, logger)
	authService := usecase.NewAuthService(userRepo, passwords, tokens, logger)
	reportService := usecase.NewReportService(reportRepo, rabbit, logger)
	resourceService := usecase.NewResourceService(resourceRepo, logger)

	var wg sync.WaitGroup

	auditWorker := worker.NewAuditWorker(rabbit.URL(), rabbit.QueueName(), auditRepo, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		auditWorker.Start(ctx)
	}()

	router := api.NewRouter(taskService, authService, reportService, resourceService, tokens)
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}

	wg.Wait()
	logger.Info("shutdown complete")
	return nil
}

func runMigrations(cfg *config.Config) error {
	m, err := migrate.New(cfg.MigrationsPath, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
