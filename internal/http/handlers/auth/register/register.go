// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Обработчик декодирует и валидирует тело запроса, делегирует регистрацию
// бизнес-логике и при успехе сразу устанавливает сессионную cookie,
// чтобы пользователь оказался залогинен.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/session"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	authservice "github.com/magabrotheeeer/expense-tracker/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, displayName, email, password string) (int64, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions *session.Manager
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, sessions *session.Manager) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя и устанавливает сессионную cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} map[string]any "Email занят или некорректное тело"
// @Failure 500 {object} map[string]any "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.TypeValidation, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userID, err := h.service.Register(r.Context(), req.DisplayName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrEmailAlreadyInUse):
			log.Info("email already in use", slog.String("email", req.Email))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(response.TypeEmailAlreadyInUse, "email is already in use"))
		case errors.Is(err, authservice.ErrPasswordHash):
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.TypePasswordHash, "failed to register user"))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(response.TypeDatabase, "failed to register user"))
		}
		return
	}

	token, err := h.sessions.Establish(userID)
	if err != nil {
		log.Error("failed to establish session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.TypeDatabase, "failed to establish session"))
		return
	}
	h.sessions.SetCookie(w, token)

	log.Info("user registered", slog.Int64("user_id", userID))
	render.JSON(w, r, response.Success(response.M{
		"user_id": userID,
	}))
}
