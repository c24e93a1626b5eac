package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vividexpense-be/internal/entities"
)

const expenseColumns = `id, user_id, amount, category, description, date, created_at`

type expenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*entities.Expense, error) {
	var e entities.Expense
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Amount,
		&e.Category,
		&e.Description,
		&e.Date,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.Date = entities.NewDate(e.Date)
	return &e, nil
}

// dateArg sends dates as YYYY-MM-DD so the session time zone cannot shift them.
func dateArg(t time.Time) string {
	return t.Format(entities.DateLayout)
}

// Create inserts a new expense into the database
func (r *expenseRepository) Create(ctx context.Context, e *entities.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, amount, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Amount, e.Category, e.Description, dateArg(e.Date), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// FindByID finds an expense by ID, only if userID owns it
func (r *expenseRepository) FindByID(ctx context.Context, id, userID string) (*entities.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	return e, nil
}

// List retrieves the user's expenses matching filter
func (r *expenseRepository) List(ctx context.Context, userID string, filter entities.ExpenseFilter) ([]entities.Expense, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`)
	args := []interface{}{userID}

	where := func(clause string, arg interface{}) {
		args = append(args, arg)
		b.WriteString(" AND ")
		fmt.Fprintf(&b, clause, len(args))
	}
	if filter.Category != "" {
		where("category = $%d", filter.Category)
	}
	if filter.From != nil {
		where("date >= $%d", dateArg(*filter.From))
	}
	if filter.Through != nil {
		where("date <= $%d", dateArg(*filter.Through))
	}
	if filter.Before != nil {
		where("date < $%d", dateArg(*filter.Before))
	}

	if filter.SortDesc {
		b.WriteString(" ORDER BY date DESC, created_at DESC")
	} else {
		b.WriteString(" ORDER BY date ASC, created_at ASC")
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]entities.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// Update changes only the supplied fields, only if userID owns the expense
func (r *expenseRepository) Update(ctx context.Context, id, userID string, fields entities.ExpenseUpdate) (*entities.Expense, error) {
	if fields.IsEmpty() {
		return r.FindByID(ctx, id, userID)
	}

	var sets []string
	var args []interface{}
	set := func(column string, arg interface{}) {
		args = append(args, arg)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if fields.Amount != nil {
		set("amount", *fields.Amount)
	}
	if fields.Category != nil {
		set("category", *fields.Category)
	}
	if fields.Description != nil {
		set("description", *fields.Description)
	}
	if fields.Date != nil {
		set("date", dateArg(*fields.Date))
	}
	args = append(args, id, userID)

	query := fmt.Sprintf(`
		UPDATE expenses
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args)-1, len(args), expenseColumns)

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return e, nil
}

// Delete removes an expense, only if userID owns it
func (r *expenseRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
