package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// CreateExpense вставляет новую запись расхода вместе с категориями
// и возвращает её ID. Категории создаются по требованию, привязка
// идет через таблицу expense_tags. Всё выполняется в одной транзакции.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense, tags []string) (int64, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int64
	query := `INSERT INTO expenses (user_id, amount, expense_time, comment)
			  VALUES ($1, $2, $3, $4)
			  RETURNING expense_id`
	if err = tx.QueryRowContext(ctx, query,
		expense.UserID, expense.Amount, expense.ExpenseTime, expense.Comment).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = attachTags(ctx, tx, expense.UserID, newID, tags); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// attachTags создает недостающие категории пользователя и привязывает их к расходу.
func attachTags(ctx context.Context, tx *sql.Tx, userID, expenseID int64, tags []string) error {
	for _, name := range tags {
		var tagID int64
		query := `INSERT INTO tags (user_id, name)
				  VALUES ($1, $2)
				  ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
				  RETURNING tag_id`
		if err := tx.QueryRowContext(ctx, query, userID, name).Scan(&tagID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expense_tags (expense_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			expenseID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// expenseTags возвращает категории расхода.
func (s *Storage) expenseTags(ctx context.Context, expenseID int64) ([]models.Tag, error) {
	query := `SELECT t.tag_id, t.name
			  FROM tags t
			  JOIN expense_tags et ON et.tag_id = t.tag_id
			  WHERE et.expense_id = $1
			  ORDER BY t.name`
	rows, err := s.DB.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err = rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ReadExpense возвращает расход по ID в пределах одного пользователя.
// Чужой или отсутствующий расход дает ErrExpenseNotFound.
func (s *Storage) ReadExpense(ctx context.Context, userID, expenseID int64) (*models.Expense, error) {
	const op = "storage.ReadExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT expense_id, user_id, amount, expense_time, COALESCE(comment, '')
			  FROM expenses
			  WHERE expense_id = $1 AND user_id = $2`
	e := &models.Expense{}
	row := s.DB.QueryRowContext(ctx, query, expenseID, userID)
	if err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.ExpenseTime, &e.Comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrExpenseNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tags, err := s.expenseTags(ctx, e.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.Tags = tags
	return e, nil
}

// UpdateExpense обновляет расход по ID и перепривязывает категории.
// Возвращает количество обновленных строк.
func (s *Storage) UpdateExpense(ctx context.Context, expense models.Expense, tags []string) (int, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE expenses
			  SET amount = $1, expense_time = $2, comment = $3
			  WHERE expense_id = $4 AND user_id = $5`
	res, err := tx.ExecContext(ctx, query,
		expense.Amount, expense.ExpenseTime, expense.Comment, expense.ID, expense.UserID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return 0, nil
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM expense_tags WHERE expense_id = $1`, expense.ID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = attachTags(ctx, tx, expense.UserID, expense.ID, tags); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// RemoveExpense удаляет расход по ID в пределах пользователя
// и возвращает количество удалённых строк.
func (s *Storage) RemoveExpense(ctx context.Context, userID, expenseID int64) (int, error) {
	const op = "storage.RemoveExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM expenses WHERE expense_id = $1 AND user_id = $2`, expenseID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// ListExpenses возвращает расходы пользователя с пагинацией, новые первыми.
func (s *Storage) ListExpenses(ctx context.Context, userID int64, limit, offset int) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT expense_id, user_id, amount, expense_time, COALESCE(comment, '')
			  FROM expenses
			  WHERE user_id = $1
			  ORDER BY expense_time DESC, expense_id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err = rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.ExpenseTime, &e.Comment); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, e := range result {
		tags, err := s.expenseTags(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		e.Tags = tags
	}
	return result, nil
}

// SumExpenses считает сумму расходов пользователя за период,
// опционально только по одной категории.
func (s *Storage) SumExpenses(ctx context.Context, filter models.FilterSum) (int64, error) {
	const op = "storage.SumExpenses"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(e.amount), 0)
			  FROM expenses e
			  WHERE e.user_id = $1
			    AND e.expense_time >= $2
			    AND e.expense_time < $3
			    AND ($4::TEXT IS NULL OR EXISTS (
			        SELECT 1 FROM expense_tags et
			        JOIN tags t ON t.tag_id = et.tag_id
			        WHERE et.expense_id = e.expense_id AND t.name = $4))`
	var total int64
	if err := s.DB.QueryRowContext(ctx, query,
		filter.UserID, filter.StartDate, filter.EndDate, filter.Tag).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
