package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of an expense date.
const DateLayout = "2006-01-02"

// Expense represents an expense entity in the database
type Expense struct {
	ID          string          `json:"id"`      // UUID
	UserID      string          `json:"user_id"` // Owner, every lookup is scoped by it
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"` // Calendar date, midnight UTC
	CreatedAt   time.Time       `json:"created_at"`
}

// DateString returns the expense date as YYYY-MM-DD.
func (e *Expense) DateString() string {
	return e.Date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// NewDate drops the time of day and location from t.
func NewDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpenseFilter narrows an owner's expenses. Zero values mean "no constraint".
type ExpenseFilter struct {
	Category string
	From     *time.Time // date >= From
	Through  *time.Time // date <= Through
	Before   *time.Time // date < Before
	SortDesc bool       // newest first when true
	Limit    int
}

// ExpenseUpdate carries the fields of a partial update; nil fields are left untouched.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Date        *time.Time
}

// IsEmpty reports whether the update changes nothing.
func (u ExpenseUpdate) IsEmpty() bool {
	return u.Amount == nil && u.Category == nil && u.Description == nil && u.Date == nil
}
