// Package middlewarectx содержит HTTP middleware для обработки сессионных cookie.
//
// SessionMiddleware расшифровывает cookie сессии, и в случае успеха добавляет
// в контекст идентификатор пользователя для дальнейшего использования
// в обработчиках. Отсутствующая, просроченная или подделанная cookie — это
// обычный отказ запроса (400 not_logged_in), а не падение обработчика.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID — ключ для идентификатора пользователя в контексте.
const UserID Key = "user_id"

// SessionMiddleware возвращает HTTP middleware, который проверяет cookie сессии.
//
// Если сессия валидна, добавляет идентификатор пользователя в контекст запроса,
// иначе возвращает 400 с error_type not_logged_in.
func SessionMiddleware(sessions *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userID, ok := sessions.Resolve(session.FromRequest(r))
			if !ok {
				log.Info("request without a valid session")
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(response.TypeNotLoggedIn, "not logged in"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext достает идентификатор пользователя, положенный SessionMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserID).(int64)
	return userID, ok
}
