// Package list реализует HTTP-обработчик получения списка расходов.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает интерфейс бизнес-логики получения списка расходов.
type Service interface {
	List(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error)
}

// Handler обрабатывает запросы на получение списка расходов.
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
	const op = "handlers.expense.list"

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

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.TypeValidation, "invalid limit"))
			return
		}
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.TypeValidation, "invalid offset"))
			return
		}
		offset = v
	}

	expenses, err := h.service.List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Error("failed to list expenses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.TypeDatabase, "failed to list expenses"))
		return
	}

	log.Info("expenses listed", slog.Int("count", len(expenses)))
	render.JSON(w, r, response.Success(response.M{
		"expenses": expenses,
		"count":    len(expenses),
	}))
}
