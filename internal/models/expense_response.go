package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"vividexpense-be/internal/entities"
)

// ExpenseResponse is the wire representation of an expense
type ExpenseResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time       `json:"created_at"`
}

// NewExpenseResponse converts an expense entity to its wire representation.
func NewExpenseResponse(e *entities.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.DateString(),
		CreatedAt:   e.CreatedAt,
	}
}

// MarshalJSON writes the amount as a JSON number.
func (r ExpenseResponse) MarshalJSON() ([]byte, error) {
	type wire ExpenseResponse
	return json.Marshal(struct {
		wire
		Amount json.Number `json:"amount"`
	}{wire(r), json.Number(r.Amount.String())})
}
