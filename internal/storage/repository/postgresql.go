// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями и расходами. Предоставляет методы
// создания, чтения, обновления, удаления и агрегирования записей.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrUserNotFound возвращается, когда пользователь отсутствует в базе.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken возвращается при нарушении уникальности email.
	// Уникальность гарантирует констрейнт в базе, а не предварительная проверка:
	// конкурирующие регистрации с одним email иначе были бы гонкой.
	ErrEmailTaken = errors.New("email already taken")
	// ErrExpenseNotFound возвращается, когда расход отсутствует или принадлежит другому пользователю.
	ErrExpenseNotFound = errors.New("expense not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и расходами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// isUniqueViolation распознает нарушение уникального констрейнта PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
