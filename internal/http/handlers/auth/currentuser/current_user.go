// Package currentuser реализует HTTP-обработчик получения профиля
// текущего пользователя по сессионной cookie.
//
// Маршрут стоит за SessionMiddleware: идентификатор пользователя берется
// из контекста запроса. Сессия, указывающая на уже удалённого пользователя, —
// нарушение внутренней согласованности и отдается как 500.
package currentuser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
}

// Handler обрабатывает запросы на получение текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.currentuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.TypeNotLoggedIn, "not logged in"))
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Валидная сессия на несуществующего пользователя
			log.Error("session points to a missing user", slog.Int64("user_id", userID))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.TypeNotFound, "current user no longer exists"))
			return
		}
		log.Error("failed to read current user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.TypeDatabase, "failed to read current user"))
		return
	}

	render.JSON(w, r, response.Success(response.M{
		"user": user,
	}))
}
