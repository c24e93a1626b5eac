package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vividexpense-be/internal/database"
	"vividexpense-be/internal/entities"
	"vividexpense-be/internal/repository"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(ctx, db))
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *sql.DB) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:           uuid.NewString(),
		Name:         "Test",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func TestUserRepository_Postgres(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)

	u := createUser(t, db)

	found, err := users.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = users.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = users.Create(ctx, &entities.User{ID: uuid.NewString(), Email: u.Email, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUserRepository_ConcurrentRegistration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	email := uuid.NewString() + "@example.com"
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users WHERE email = $1`, email)
	})

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- users.Create(ctx, &entities.User{
				ID:           uuid.NewString(),
				Name:         "Racer",
				Email:        email,
				PasswordHash: "hash",
				CreatedAt:    time.Now().UTC(),
			})
		}()
	}
	wg.Wait()
	close(errs)

	var created int
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		if !errors.Is(err, repository.ErrDuplicateEmail) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
}

func TestExpenseRepository_Postgres(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	expenses := repository.NewExpenseRepository(db)
	alice := createUser(t, db)
	bob := createUser(t, db)

	mustDate := func(s string) time.Time {
		d, err := entities.ParseDate(s)
		require.NoError(t, err)
		return d
	}
	add := func(owner, category, date, amount string, offset time.Duration) *entities.Expense {
		e := &entities.Expense{
			ID:          uuid.NewString(),
			UserID:      owner,
			Amount:      decimal.RequireFromString(amount),
			Category:    category,
			Description: "d",
			Date:        mustDate(date),
			CreatedAt:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC).Add(offset),
		}
		require.NoError(t, expenses.Create(ctx, e))
		return e
	}

	first := add(alice.ID, "Food", "2025-06-01", "50.00", 0)
	second := add(alice.ID, "Transport", "2025-06-15", "20.00", time.Minute)
	third := add(alice.ID, "Food", "2025-06-15", "30.00", 2*time.Minute)
	other := add(bob.ID, "Food", "2025-06-15", "99.99", 3*time.Minute)

	got, err := expenses.FindByID(ctx, first.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", got.DateString())
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("50")))

	_, err = expenses.FindByID(ctx, other.ID, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = expenses.FindByID(ctx, "garbage", alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	from, through := mustDate("2025-06-15"), mustDate("2025-06-15")
	list, err := expenses.List(ctx, alice.ID, entities.ExpenseFilter{From: &from, Through: &through, SortDesc: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, third.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	list, err = expenses.List(ctx, alice.ID, entities.ExpenseFilter{Category: "Food", Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	desc := "updated"
	updated, err := expenses.Update(ctx, first.ID, alice.ID, entities.ExpenseUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)
	assert.Equal(t, "Food", updated.Category)

	_, err = expenses.Update(ctx, other.ID, alice.ID, entities.ExpenseUpdate{Description: &desc})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, expenses.Delete(ctx, other.ID, alice.ID), repository.ErrNotFound)
	require.NoError(t, expenses.Delete(ctx, first.ID, alice.ID))
	assert.ErrorIs(t, expenses.Delete(ctx, first.ID, alice.ID), repository.ErrNotFound)
}
