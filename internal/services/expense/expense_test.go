package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// MockExpenseRepository реализует интерфейс ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) CreateExpense(ctx context.Context, expense models.Expense, tags []string) (int64, error) {
	args := m.Called(ctx, expense, tags)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) ReadExpense(ctx context.Context, userID, expenseID int64) (*models.Expense, error) {
	args := m.Called(ctx, userID, expenseID)
	if res := args.Get(0); res != nil {
		return res.(*models.Expense), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense models.Expense, tags []string) (int, error) {
	args := m.Called(ctx, expense, tags)
	return args.Int(0), args.Error(1)
}

func (m *MockExpenseRepository) RemoveExpense(ctx context.Context, userID, expenseID int64) (int, error) {
	args := m.Called(ctx, userID, expenseID)
	return args.Int(0), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error) {
	args := m.Called(ctx, userID, limit, offset)
	if res := args.Get(0); res != nil {
		return res.([]*models.Expense), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockExpenseRepository) SumExpenses(ctx context.Context, filter models.FilterSum) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное создание", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		want := models.Expense{
			UserID:      5,
			Amount:      1050,
			ExpenseTime: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			Comment:     "groceries",
		}
		repo.On("CreateExpense", mock.Anything, want, []string{"food"}).
			Return(int64(11), nil).Once()

		svc := NewExpenseService(repo, newNoopLogger())

		id, err := svc.Create(ctx, 5, models.DummyExpense{
			Amount:      1050,
			ExpenseTime: "15-03-2025",
			Comment:     "groceries",
			Tags:        []string{"food"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
		repo.AssertExpectations(t)
	})

	t.Run("некорректная дата", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		svc := NewExpenseService(repo, newNoopLogger())

		_, err := svc.Create(ctx, 5, models.DummyExpense{
			Amount:      1050,
			ExpenseTime: "2025-03-15",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "CreateExpense")
	})
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное обновление", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		want := models.Expense{
			ID:          11,
			UserID:      5,
			Amount:      2000,
			ExpenseTime: time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
			Comment:     "dinner",
		}
		repo.On("UpdateExpense", mock.Anything, want, []string{"food"}).
			Return(1, nil).Once()

		svc := NewExpenseService(repo, newNoopLogger())

		count, err := svc.Update(ctx, 5, 11, models.DummyExpense{
			Amount:      2000,
			ExpenseTime: "16-03-2025",
			Comment:     "dinner",
			Tags:        []string{"food"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("некорректная дата", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		svc := NewExpenseService(repo, newNoopLogger())

		_, err := svc.Update(ctx, 5, 11, models.DummyExpense{
			Amount:      2000,
			ExpenseTime: "tomorrow",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpdateExpense")
	})
}

func TestExpenseService_SumWithFilter(t *testing.T) {
	ctx := context.Background()

	t.Run("фильтр с категорией", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		repo.On("SumExpenses", mock.Anything, mock.MatchedBy(func(f models.FilterSum) bool {
			return f.UserID == 5 &&
				f.Tag != nil && *f.Tag == "food" &&
				f.StartDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) &&
				f.EndDate.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
		})).Return(int64(12345), nil).Once()

		svc := NewExpenseService(repo, newNoopLogger())

		total, err := svc.SumWithFilter(ctx, 5, models.DummyFilterSum{
			Tag:       "food",
			StartDate: "01-03-2025",
			EndDate:   "31-03-2025",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(12345), total)
	})

	t.Run("фильтр без категории", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		repo.On("SumExpenses", mock.Anything, mock.MatchedBy(func(f models.FilterSum) bool {
			return f.Tag == nil
		})).Return(int64(0), nil).Once()

		svc := NewExpenseService(repo, newNoopLogger())

		total, err := svc.SumWithFilter(ctx, 5, models.DummyFilterSum{
			StartDate: "01-03-2025",
			EndDate:   "31-03-2025",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("некорректная дата начала", func(t *testing.T) {
		repo := new(MockExpenseRepository)
		svc := NewExpenseService(repo, newNoopLogger())

		_, err := svc.SumWithFilter(ctx, 5, models.DummyFilterSum{
			StartDate: "bad",
			EndDate:   "31-03-2025",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "SumExpenses")
	})
}
