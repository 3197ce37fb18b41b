// Package services содержит бизнес-логику для управления расходами пользователя.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// DateLayout — формат дат в JSON-запросах.
const DateLayout = "02-01-2006"

// ExpenseRepository определяет методы для работы с расходами в хранилище.
type ExpenseRepository interface {
	// CreateExpense добавляет новый расход с категориями и возвращает его ID.
	CreateExpense(ctx context.Context, expense models.Expense, tags []string) (int64, error)
	// ReadExpense возвращает расход пользователя по ID.
	ReadExpense(ctx context.Context, userID, expenseID int64) (*models.Expense, error)
	// UpdateExpense обновляет расход и возвращает количество обновленных записей.
	UpdateExpense(ctx context.Context, expense models.Expense, tags []string) (int, error)
	// RemoveExpense удаляет расход и возвращает количество удалённых записей.
	RemoveExpense(ctx context.Context, userID, expenseID int64) (int, error)
	// ListExpenses возвращает расходы пользователя с пагинацией.
	ListExpenses(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error)
	// SumExpenses подсчитывает сумму расходов по фильтру.
	SumExpenses(ctx context.Context, filter models.FilterSum) (int64, error)
}

// ExpenseService реализует бизнес-логику работы с расходами.
type ExpenseService struct {
	repo ExpenseRepository
	log  *slog.Logger
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(repo ExpenseRepository, log *slog.Logger) *ExpenseService {
	return &ExpenseService{
		repo: repo,
		log:  log,
	}
}

// Create создает новый расход пользователя и возвращает его ID.
func (s *ExpenseService) Create(ctx context.Context, userID int64, req models.DummyExpense) (int64, error) {
	expenseTime, err := time.Parse(DateLayout, req.ExpenseTime)
	if err != nil {
		return 0, fmt.Errorf("invalid expense date: %w", err)
	}

	expense := models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		ExpenseTime: expenseTime,
		Comment:     req.Comment,
	}

	id, err := s.repo.CreateExpense(ctx, expense, req.Tags)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new expense", slog.Int64("id", id), slog.Int64("user_id", userID))
	return id, nil
}

// Read возвращает расход пользователя по ID.
func (s *ExpenseService) Read(ctx context.Context, userID, expenseID int64) (*models.Expense, error) {
	return s.repo.ReadExpense(ctx, userID, expenseID)
}

// Update обновляет расход пользователя и возвращает количество обновленных записей.
func (s *ExpenseService) Update(ctx context.Context, userID, expenseID int64, req models.DummyExpense) (int, error) {
	expenseTime, err := time.Parse(DateLayout, req.ExpenseTime)
	if err != nil {
		return 0, fmt.Errorf("invalid expense date: %w", err)
	}

	expense := models.Expense{
		ID:          expenseID,
		UserID:      userID,
		Amount:      req.Amount,
		ExpenseTime: expenseTime,
		Comment:     req.Comment,
	}
	return s.repo.UpdateExpense(ctx, expense, req.Tags)
}

// Remove удаляет расход пользователя и возвращает количество удалённых записей.
func (s *ExpenseService) Remove(ctx context.Context, userID, expenseID int64) (int, error) {
	return s.repo.RemoveExpense(ctx, userID, expenseID)
}

// List возвращает расходы пользователя с пагинацией.
func (s *ExpenseService) List(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error) {
	return s.repo.ListExpenses(ctx, userID, limit, offset)
}

// SumWithFilter считает сумму расходов за период, опционально по одной категории.
func (s *ExpenseService) SumWithFilter(ctx context.Context, userID int64, req models.DummyFilterSum) (int64, error) {
	startDate, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse(DateLayout, req.EndDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}

	var tagPtr *string
	if req.Tag != "" {
		tagPtr = &req.Tag
	}

	filter := models.FilterSum{
		UserID:    userID,
		Tag:       tagPtr,
		StartDate: startDate,
		EndDate:   endDate,
	}
	return s.repo.SumExpenses(ctx, filter)
}
