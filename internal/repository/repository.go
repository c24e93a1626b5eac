// Package repository persists users and expenses.
package repository

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

import (
	"context"
	"errors"

	"vividexpense-be/internal/entities"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	// Create inserts user. Returns ErrDuplicateEmail when the email is taken,
	// including when a concurrent registration wins the race.
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

// ExpenseRepository defines the interface for expense database operations.
// Every method except Create is scoped by userID; records owned by someone else
// are reported as ErrNotFound.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entities.Expense) error
	FindByID(ctx context.Context, id, userID string) (*entities.Expense, error)
	List(ctx context.Context, userID string, filter entities.ExpenseFilter) ([]entities.Expense, error)
	Update(ctx context.Context, id, userID string, fields entities.ExpenseUpdate) (*entities.Expense, error)
	Delete(ctx context.Context, id, userID string) error
}
