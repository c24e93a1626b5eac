package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vividexpense-be/internal/entities"
	"vividexpense-be/internal/models"
	"vividexpense-be/internal/repository"
)

// ListLimit caps the number of expenses returned by a single list call.
const ListLimit = 1000

// maxAmount is the first value that no longer fits NUMERIC(14,2).
var maxAmount = decimal.New(1, 12)

// ExpenseService defines the interface for expense business logic.
// Every operation is scoped to the calling user.
type ExpenseService interface {
	Create(ctx context.Context, userID string, req *models.CreateExpenseRequest) (*models.ExpenseResponse, error)
	List(ctx context.Context, userID string, query *models.ExpenseQuery) ([]*models.ExpenseResponse, error)
	Get(ctx context.Context, userID, id string) (*models.ExpenseResponse, error)
	Update(ctx context.Context, userID, id string, req *models.UpdateExpenseRequest) (*models.ExpenseResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type expenseService struct {
	repo repository.ExpenseRepository
	now  func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo, now: time.Now}
}

func validateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(2)
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount is too large", ErrValidation)
	}
	return amount, nil
}

func parseDate(field, value string) (time.Time, error) {
	d, err := entities.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrValidation, field)
	}
	return d, nil
}

// Create records a new expense for userID
func (s *expenseService) Create(ctx context.Context, userID string, req *models.CreateExpenseRequest) (*models.ExpenseResponse, error) {
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", ErrValidation)
	}
	amount, err := validateAmount(*req.Amount)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if req.Description == nil {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	expense := &entities.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Category:    req.Category,
		Description: *req.Description,
		Date:        date,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return models.NewExpenseResponse(expense), nil
}

// List returns the user's expenses, newest first
func (s *expenseService) List(ctx context.Context, userID string, query *models.ExpenseQuery) ([]*models.ExpenseResponse, error) {
	filter := entities.ExpenseFilter{
		Category: query.Category,
		SortDesc: true,
		Limit:    ListLimit,
	}
	if query.StartDate != "" {
		from, err := parseDate("start_date", query.StartDate)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if query.EndDate != "" {
		through, err := parseDate("end_date", query.EndDate)
		if err != nil {
			return nil, err
		}
		filter.Through = &through
	}

	expenses, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	resp := make([]*models.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, models.NewExpenseResponse(&expenses[i]))
	}
	return resp, nil
}

// Get returns one expense owned by userID
func (s *expenseService) Get(ctx context.Context, userID, id string) (*models.ExpenseResponse, error) {
	expense, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return models.NewExpenseResponse(expense), nil
}

// Update applies the supplied fields; an empty request returns the current record
func (s *expenseService) Update(ctx context.Context, userID, id string, req *models.UpdateExpenseRequest) (*models.ExpenseResponse, error) {
	var fields entities.ExpenseUpdate
	if req.Amount != nil {
		amount, err := validateAmount(*req.Amount)
		if err != nil {
			return nil, err
		}
		fields.Amount = &amount
	}
	if req.Category != nil {
		if strings.TrimSpace(*req.Category) == "" {
			return nil, fmt.Errorf("%w: category must not be empty", ErrValidation)
		}
		fields.Category = req.Category
	}
	fields.Description = req.Description
	if req.Date != nil {
		date, err := parseDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		fields.Date = &date
	}

	expense, err := s.repo.Update(ctx, id, userID, fields)
	if err != nil {
		return nil, notFound(err)
	}
	return models.NewExpenseResponse(expense), nil
}

// Delete removes an expense owned by userID
func (s *expenseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return notFound(err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExpenseNotFound
	}
	return err
}
