// Package read реализует HTTP-обработчик для получения пользователя по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику
// и возвращает профиль пользователя без хеша пароля.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения пользователя.
type Service interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
}

// Handler обрабатывает запросы на получение пользователя по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.TypeValidation, "failed to decode id from url"))
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Info("user not found", slog.Int64("user_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.TypeNotFound, "user does not exist"))
			return
		}
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.TypeDatabase, "failed to read user"))
		return
	}

	render.JSON(w, r, response.Success(response.M{
		"user": user,
	}))
}
