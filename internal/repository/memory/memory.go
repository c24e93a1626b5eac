// Package memory is an in-process backend for users and expenses. It holds
// everything in maps guarded by a mutex and is meant for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"vividexpense-be/internal/entities"
	"vividexpense-be/internal/repository"
)

type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]entities.User
	byEmail map[string]string
}

// NewUserStore returns an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]entities.User),
		byEmail: make(map[string]string),
	}
}

var _ repository.UserRepository = (*UserStore)(nil)

// Create stores user. The email check and the insert happen under one lock,
// so of two concurrent registrations only one succeeds.
func (s *UserStore) Create(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	s.byID[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type ExpenseStore struct {
	mu    sync.RWMutex
	items map[string]entities.Expense
}

// NewExpenseStore returns an empty expense store.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{items: make(map[string]entities.Expense)}
}

var _ repository.ExpenseRepository = (*ExpenseStore)(nil)

func (s *ExpenseStore) Create(_ context.Context, e *entities.Expense) error {
	stored := *e
	stored.Date = entities.NewDate(e.Date)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[e.ID] = stored
	return nil
}

// lookup returns the expense only when userID owns it. Callers hold the lock.
func (s *ExpenseStore) lookup(id, userID string) (entities.Expense, bool) {
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return entities.Expense{}, false
	}
	return e, true
}

func (s *ExpenseStore) FindByID(_ context.Context, id, userID string) (*entities.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.lookup(id, userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (s *ExpenseStore) List(_ context.Context, userID string, filter entities.ExpenseFilter) ([]entities.Expense, error) {
	s.mu.RLock()
	out := make([]entities.Expense, 0)
	for _, e := range s.items {
		if e.UserID == userID && matches(e, filter) {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if filter.SortDesc {
			a, b = b, a
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func matches(e entities.Expense, f entities.ExpenseFilter) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.From != nil && e.Date.Before(entities.NewDate(*f.From)) {
		return false
	}
	if f.Through != nil && e.Date.After(entities.NewDate(*f.Through)) {
		return false
	}
	if f.Before != nil && !e.Date.Before(entities.NewDate(*f.Before)) {
		return false
	}
	return true
}

func (s *ExpenseStore) Update(_ context.Context, id, userID string, fields entities.ExpenseUpdate) (*entities.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id, userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	if fields.Amount != nil {
		e.Amount = *fields.Amount
	}
	if fields.Category != nil {
		e.Category = *fields.Category
	}
	if fields.Description != nil {
		e.Description = *fields.Description
	}
	if fields.Date != nil {
		e.Date = entities.NewDate(*fields.Date)
	}
	s.items[id] = e
	return &e, nil
}

func (s *ExpenseStore) Delete(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(id, userID); !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}
