// Package services содержит логику бизнес-уровня для регистрации и входа пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/password"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// Типизированные исходы регистрации и входа. Обработчики сопоставляют их
// со статусами и error_type ответа через errors.Is.
var (
	// ErrEmailAlreadyInUse — email уже занят другим пользователем.
	ErrEmailAlreadyInUse = errors.New("email already in use")
	// ErrInvalidUser — пользователь с таким email не найден.
	ErrInvalidUser = errors.New("invalid user")
	// ErrInvalidPassword — пароль не подходит к сохранённому хешу.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrPasswordHash — внутренняя ошибка хеширования или испорченный
	// сохранённый хеш. Деталь наружу не отдается, только в лог.
	ErrPasswordHash = errors.New("password hash failure")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, displayName, email, passwordHash string) (int64, error)

	// FindUserByEmail возвращает пользователя по email или ошибку, если не найден.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию и вход пользователей.
type AuthService struct {
	users UserRepository
	log   *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, log *slog.Logger) *AuthService {
	return &AuthService{
		users: users,
		log:   log,
	}
}

// Register создает нового пользователя и возвращает его ID.
//
// Предварительная проверка email нужна для понятной ошибки, но настоящую
// гарантию "ровно один пользователь на email" дает уникальный констрейнт
// в базе: конфликт конкурирующей регистрации тоже превращается в
// ErrEmailAlreadyInUse.
func (s *AuthService) Register(ctx context.Context, displayName, email, rawPassword string) (int64, error) {
	const op = "services.auth.Register"

	_, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return 0, fmt.Errorf("%s: %w", op, ErrEmailAlreadyInUse)
	case !errors.Is(err, repository.ErrUserNotFound):
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		s.log.Error("password hashing failed", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, ErrPasswordHash)
	}

	id, err := s.users.CreateUser(ctx, displayName, email, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return 0, fmt.Errorf("%s: %w", op, ErrEmailAlreadyInUse)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Login проверяет учетные данные и возвращает ID пользователя.
//
// Неизвестный email и неверный пароль различимы для вызывающего кода —
// поведение исходной системы; в ужесточённой версии их стоит схлопнуть,
// чтобы не допускать перебора email.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (int64, error) {
	const op = "services.auth.Login"

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, fmt.Errorf("%s: %w", op, ErrInvalidUser)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrInvalidHash) {
			s.log.Error("stored password hash is malformed",
				slog.Int64("user_id", user.ID), sl.Err(err))
			return 0, fmt.Errorf("%s: %w", op, ErrPasswordHash)
		}
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidPassword)
	}
	return user.ID, nil
}
