// Package read реализует HTTP-обработчик получения расхода по ID.
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

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения расхода.
type Service interface {
	Read(ctx context.Context, userID, expenseID int64) (*models.Expense, error)
}

// Handler обрабатывает запросы на получение расхода по идентификатору.
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
	const op = "handlers.expense.read"

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

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.TypeValidation, "failed to decode id from url"))
		return
	}

	expense, err := h.service.Read(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrExpenseNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.TypeNotFound, "expense does not exist"))
			return
		}
		log.Error("failed to read expense", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.TypeDatabase, "failed to read expense"))
		return
	}

	render.JSON(w, r, response.Success(response.M{
		"expense": expense,
	}))
}
