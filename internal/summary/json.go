package summary

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amounts go over the wire as JSON numbers, not decimal's default quoted
// strings.

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func (c CategoryTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category   string      `json:"category"`
		Amount     json.Number `json:"amount"`
		Percentage json.Number `json:"percentage"`
	}{c.Category, number(c.Amount), number(c.Percentage)})
}

func (d DailyTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   string      `json:"date"`
		Amount json.Number `json:"amount"`
	}{d.Date, number(d.Amount)})
}

func (s MonthlySummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Month             string          `json:"month"`
		TotalExpenses     json.Number     `json:"total_expenses"`
		TotalCount        int             `json:"total_count"`
		CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
		DailyExpenses     []DailyTotal    `json:"daily_expenses"`
		TopCategories     []CategoryTotal `json:"top_categories"`
	}{s.Month, number(s.TotalExpenses), s.TotalCount, s.CategoryBreakdown, s.DailyExpenses, s.TopCategories})
}
