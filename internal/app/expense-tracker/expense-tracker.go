package expensetracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/expense-tracker/internal/config"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/session"
	"github.com/magabrotheeeer/expense-tracker/internal/migrations"
	authservice "github.com/magabrotheeeer/expense-tracker/internal/services/auth"
	expenseservice "github.com/magabrotheeeer/expense-tracker/internal/services/expense"
	userservice "github.com/magabrotheeeer/expense-tracker/internal/services/user"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	sessions, err := session.New([]byte(cfg.SecretKey), cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	authService := authservice.NewAuthService(db, logger)
	userService := userservice.NewUserService(db, logger)
	expenseService := expenseservice.NewExpenseService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, sessions, authService, userService, expenseService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
