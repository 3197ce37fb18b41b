// Package logout реализует HTTP-обработчик выхода из системы.
// Серверного состояния у сессии нет, logout лишь указывает клиенту
// удалить cookie.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/session"
)

// Handler обрабатывает запросы на выход из системы.
type Handler struct {
	log      *slog.Logger
	sessions *session.Manager
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions *session.Manager) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.sessions.ClearCookie(w)

	log.Info("session cookie cleared")
	render.JSON(w, r, response.Success(nil))
}
