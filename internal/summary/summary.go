// Package summary aggregates a user's expenses into monthly reports.
//
// Every function here is pure: the same input always yields the same output, and
// nothing is cached between calls.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"vividexpense-be/internal/entities"
)

// TopCategoriesLimit is how many categories make the top list.
const TopCategoriesLimit = 5

var hundred = decimal.NewFromInt(100)

// CategoryTotal is the spend in one category and its share of the month.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DailyTotal is the spend on one calendar day.
type DailyTotal struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Amount decimal.Decimal `json:"amount"`
}

// MonthlySummary is the aggregate view of one month of expenses.
type MonthlySummary struct {
	Month             string          `json:"month"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	TotalCount        int             `json:"total_count"`
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
	DailyExpenses     []DailyTotal    `json:"daily_expenses"`
	TopCategories     []CategoryTotal `json:"top_categories"`
}

// FilterMonth returns the expenses dated inside month, in their original order.
func FilterMonth(month Month, expenses []entities.Expense) []entities.Expense {
	filtered := make([]entities.Expense, 0, len(expenses))
	for _, e := range expenses {
		if month.Contains(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Summarize builds the monthly summary for the expenses dated inside month.
//
// Categories are ordered by amount, largest first. Categories with equal amounts keep
// the order in which they were first seen in expenses.
func Summarize(month Month, expenses []entities.Expense) *MonthlySummary {
	inMonth := FilterMonth(month, expenses)

	total := decimal.Zero
	breakdown := make([]CategoryTotal, 0)
	categoryIndex := make(map[string]int)
	daily := make([]DailyTotal, 0)
	dayIndex := make(map[string]int)

	for _, e := range inMonth {
		total = total.Add(e.Amount)

		if i, ok := categoryIndex[e.Category]; ok {
			breakdown[i].Amount = breakdown[i].Amount.Add(e.Amount)
		} else {
			categoryIndex[e.Category] = len(breakdown)
			breakdown = append(breakdown, CategoryTotal{Category: e.Category, Amount: e.Amount})
		}

		day := e.DateString()
		if i, ok := dayIndex[day]; ok {
			daily[i].Amount = daily[i].Amount.Add(e.Amount)
		} else {
			dayIndex[day] = len(daily)
			daily = append(daily, DailyTotal{Date: day, Amount: e.Amount})
		}
	}

	for i := range breakdown {
		breakdown[i].Percentage = Percentage(breakdown[i].Amount, total)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})

	// YYYY-MM-DD sorts chronologically as a string.
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})

	top := make([]CategoryTotal, min(TopCategoriesLimit, len(breakdown)))
	copy(top, breakdown)

	return &MonthlySummary{
		Month:             month.String(),
		TotalExpenses:     total,
		TotalCount:        len(inMonth),
		CategoryBreakdown: breakdown,
		DailyExpenses:     daily,
		TopCategories:     top,
	}
}

// Percentage returns part/total*100 rounded to two decimals, or zero when total is zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(total, 2)
}

// Total sums the amounts of expenses.
func Total(expenses []entities.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
