// Package services содержит бизнес-логику чтения профилей пользователей.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// UserRepository определяет методы чтения пользователей из хранилища.
type UserRepository interface {
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	// ListUsers возвращает всех пользователей в порядке создания.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// UserService реализует чтение профилей. Хеш пароля остается внутри
// models.User, но никогда не попадает в сериализованный ответ.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// ListAll возвращает всех пользователей.
func (s *UserService) ListAll(ctx context.Context) ([]*models.User, error) {
	const op = "services.user.ListAll"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// GetByID возвращает пользователя по ID.
// Отсутствие пользователя транслируется как repository.ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	const op = "services.user.GetByID"

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
