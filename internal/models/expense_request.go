package models

import "github.com/shopspring/decimal"

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Description *string          `json:"description" binding:"required"`              // may be empty, must be present
	Date        string           `json:"date" binding:"required,datetime=2006-01-02"` // YYYY-MM-DD
}

// UpdateExpenseRequest represents a partial update; omitted fields keep their value
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// ExpenseQuery holds the optional list filters taken from the query string
type ExpenseQuery struct {
	Category  string `form:"category"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"` // inclusive
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`   // inclusive
}
