// Package userid реализует HTTP-обработчик, возвращающий идентификатор
// текущего пользователя из сессионной cookie.
package userid

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
)

// Handler возвращает идентификатор залогиненного пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.userid"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Info("request without a valid session")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.TypeNotLoggedIn, "not logged in"))
		return
	}

	render.JSON(w, r, response.Success(response.M{
		"user_id": userID,
	}))
}
