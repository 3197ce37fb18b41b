// Package expensetracker предоставляет маршруты для основного приложения.
package expensetracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/currentuser"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/userid"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/create"
	expenselist "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/list"
	expenseread "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/read"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/remove"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/sum"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/update"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/health"
	userlist "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/expense-tracker/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/session"
	authservice "github.com/magabrotheeeer/expense-tracker/internal/services/auth"
	expenseservice "github.com/magabrotheeeer/expense-tracker/internal/services/expense"
	userservice "github.com/magabrotheeeer/expense-tracker/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	sessions *session.Manager,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	expenseService *expenseservice.ExpenseService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService, sessions).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService, sessions).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger, sessions).ServeHTTP)
		r.Get("/users", userlist.New(logger, userService).ServeHTTP)
		r.Get("/users/{id}", userread.New(logger, userService).ServeHTTP)

		// Группа с сессионной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(sessions, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/auth/current_user", currentuser.New(logger, userService).ServeHTTP)
			r.Get("/auth/user_id", userid.New(logger).ServeHTTP)
			r.Post("/expenses", create.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/{id}", expenseread.New(logger, expenseService).ServeHTTP)
			r.Put("/expenses/{id}", update.New(logger, expenseService).ServeHTTP)
			r.Delete("/expenses/{id}", remove.New(logger, expenseService).ServeHTTP)
			r.Get("/expenses/list", expenselist.New(logger, expenseService).ServeHTTP)
			r.Post("/expenses/sum", sum.New(logger, expenseService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
