package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Идентификатор отдает сама вставка (RETURNING), повторный запрос по email не нужен.
// Нарушение уникальности email транслируется в ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, displayName, email, passwordHash string) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (display_name, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING user_id;`
	if err := s.DB.QueryRowContext(ctx, query,
		displayName, email, passwordHash).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindUserByEmail возвращает пользователя по email.
// Совпадение не более одного: на email стоит уникальный констрейнт.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, display_name, email, password_hash, creation_time
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.DisplayName, &u.Email, &u.PasswordHash,
		&u.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, display_name, email, password_hash, creation_time
			  FROM users
			  WHERE user_id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&u.ID, &u.DisplayName, &u.Email, &u.PasswordHash,
		&u.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей в порядке создания.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, display_name, email, password_hash, creation_time
			  FROM users
			  ORDER BY user_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.DisplayName, &u.Email, &u.PasswordHash,
			&u.CreationTime); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
