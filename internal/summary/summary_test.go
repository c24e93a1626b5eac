package summary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vividexpense-be/internal/entities"
)

func expense(date, category, amount string) entities.Expense {
	d, err := entities.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return entities.Expense{
		ID:       date + "/" + category + "/" + amount,
		UserID:   "user-a",
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     d,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

var june2025 = Month{Year: 2025, Month: time.June}

func TestSummarizeJuneScenario(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-01", "Food", "50"),
		expense("2025-06-15", "Food", "30"),
		expense("2025-06-20", "Transport", "20"),
	}

	s := Summarize(june2025, expenses)

	assert.Equal(t, "2025-06", s.Month)
	assertDecimal(t, "100", s.TotalExpenses)
	assert.Equal(t, 3, s.TotalCount)

	require.Len(t, s.CategoryBreakdown, 2)
	assert.Equal(t, "Food", s.CategoryBreakdown[0].Category)
	assertDecimal(t, "80", s.CategoryBreakdown[0].Amount)
	assertDecimal(t, "80.00", s.CategoryBreakdown[0].Percentage)
	assert.Equal(t, "Transport", s.CategoryBreakdown[1].Category)
	assertDecimal(t, "20", s.CategoryBreakdown[1].Amount)
	assertDecimal(t, "20.00", s.CategoryBreakdown[1].Percentage)

	require.Len(t, s.DailyExpenses, 3)
	assert.Equal(t, "2025-06-01", s.DailyExpenses[0].Date)
	assertDecimal(t, "50", s.DailyExpenses[0].Amount)
	assert.Equal(t, "2025-06-15", s.DailyExpenses[1].Date)
	assertDecimal(t, "30", s.DailyExpenses[1].Amount)
	assert.Equal(t, "2025-06-20", s.DailyExpenses[2].Date)
	assertDecimal(t, "20", s.DailyExpenses[2].Amount)

	assert.Equal(t, s.CategoryBreakdown, s.TopCategories)
}

func TestMonthlySummaryJSONUsesNumbers(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-01", "Food", "50"),
		expense("2025-06-15", "Food", "30.25"),
		expense("2025-06-20", "Transport", "20"),
	}

	body, err := json.Marshal(Summarize(june2025, expenses))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"month": "2025-06",
		"total_expenses": 100.25,
		"total_count": 3,
		"category_breakdown": [
			{"category": "Food", "amount": 80.25, "percentage": 80.05},
			{"category": "Transport", "amount": 20, "percentage": 19.95}
		],
		"daily_expenses": [
			{"date": "2025-06-01", "amount": 50},
			{"date": "2025-06-15", "amount": 30.25},
			{"date": "2025-06-20", "amount": 20}
		],
		"top_categories": [
			{"category": "Food", "amount": 80.25, "percentage": 80.05},
			{"category": "Transport", "amount": 20, "percentage": 19.95}
		]
	}`, string(body))

	body, err = json.Marshal(Summarize(june2025, nil))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"category_breakdown":[]`)
}

func TestSummarizeEmptyMonth(t *testing.T) {
	s := Summarize(june2025, nil)

	assertDecimal(t, "0", s.TotalExpenses)
	assert.Equal(t, 0, s.TotalCount)
	assert.NotNil(t, s.CategoryBreakdown)
	assert.Empty(t, s.CategoryBreakdown)
	assert.NotNil(t, s.DailyExpenses)
	assert.Empty(t, s.DailyExpenses)
	assert.NotNil(t, s.TopCategories)
	assert.Empty(t, s.TopCategories)
}

func TestSummarizeZeroTotalGivesZeroPercentages(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-03", "Gifts", "0"),
		expense("2025-06-04", "Fees", "0.00"),
	}

	s := Summarize(june2025, expenses)

	assertDecimal(t, "0", s.TotalExpenses)
	assert.Equal(t, 2, s.TotalCount)
	require.Len(t, s.CategoryBreakdown, 2)
	for _, c := range s.CategoryBreakdown {
		assertDecimal(t, "0", c.Percentage)
	}
}

func TestSummarizeIgnoresOtherMonths(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-05-31", "Food", "999"),
		expense("2025-06-01", "Food", "10"),
		expense("2025-06-30", "Rent", "500"),
		expense("2025-07-01", "Rent", "500"),
	}

	s := Summarize(june2025, expenses)

	assertDecimal(t, "510", s.TotalExpenses)
	assert.Equal(t, 2, s.TotalCount)
}

func TestSummarizeDecemberRollover(t *testing.T) {
	expenses := []entities.Expense{
		expense("2024-12-31", "Party", "120"),
		expense("2025-01-01", "Party", "80"),
	}

	dec := Summarize(Month{2024, time.December}, expenses)
	assertDecimal(t, "120", dec.TotalExpenses)
	assert.Equal(t, 1, dec.TotalCount)

	jan := Summarize(Month{2025, time.January}, expenses)
	assertDecimal(t, "80", jan.TotalExpenses)
	assert.Equal(t, 1, jan.TotalCount)
}

func TestSummarizeTiesKeepDiscoveryOrder(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-02", "Books", "25"),
		expense("2025-06-01", "Coffee", "25"),
		expense("2025-06-05", "Rent", "100"),
		expense("2025-06-03", "Apps", "25"),
	}

	s := Summarize(june2025, expenses)

	var order []string
	for _, c := range s.CategoryBreakdown {
		order = append(order, c.Category)
	}
	assert.Equal(t, []string{"Rent", "Books", "Coffee", "Apps"}, order)
}

func TestSummarizeTopCategoriesCapsAtFive(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-01", "A", "70"),
		expense("2025-06-01", "B", "60"),
		expense("2025-06-02", "C", "50"),
		expense("2025-06-02", "D", "40"),
		expense("2025-06-03", "E", "30"),
		expense("2025-06-03", "F", "20"),
		expense("2025-06-04", "G", "10"),
	}

	s := Summarize(june2025, expenses)

	require.Len(t, s.CategoryBreakdown, 7)
	require.Len(t, s.TopCategories, TopCategoriesLimit)
	assert.Equal(t, s.CategoryBreakdown[:TopCategoriesLimit], s.TopCategories)
	assert.Equal(t, "E", s.TopCategories[4].Category)
}

func TestSummarizeRoundsPercentagesToTwoDecimals(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-01", "A", "1"),
		expense("2025-06-01", "B", "1"),
		expense("2025-06-01", "C", "1"),
	}

	s := Summarize(june2025, expenses)

	for _, c := range s.CategoryBreakdown {
		assertDecimal(t, "33.33", c.Percentage)
	}
}

func TestSummarizeTotalsAgree(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-01", "Food", "12.40"),
		expense("2025-06-01", "Transport", "3.10"),
		expense("2025-06-09", "Food", "7.75"),
		expense("2025-06-09", "Health", "45.00"),
		expense("2025-06-17", "Rent", "800"),
		expense("2025-06-30", "Food", "0.05"),
		expense("2025-07-01", "Food", "1000"),
	}

	s := Summarize(june2025, expenses)

	byCategory := decimal.Zero
	for _, c := range s.CategoryBreakdown {
		byCategory = byCategory.Add(c.Amount)
	}
	byDay := decimal.Zero
	for _, d := range s.DailyExpenses {
		byDay = byDay.Add(d.Amount)
	}

	assertDecimal(t, "868.30", s.TotalExpenses)
	assert.True(t, byCategory.Equal(s.TotalExpenses))
	assert.True(t, byDay.Equal(s.TotalExpenses))
	assert.Equal(t, len(FilterMonth(june2025, expenses)), s.TotalCount)
}

func TestSummarizeIsIdempotent(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-20", "Transport", "20"),
		expense("2025-06-01", "Food", "50"),
		expense("2025-06-15", "Food", "30"),
	}

	first := Summarize(june2025, expenses)
	second := Summarize(june2025, expenses)

	assert.Equal(t, first, second)
}

func TestFilterMonthKeepsOrderAndDoesNotMutate(t *testing.T) {
	expenses := []entities.Expense{
		expense("2025-06-20", "Transport", "20"),
		expense("2025-05-01", "Food", "50"),
		expense("2025-06-15", "Food", "30"),
	}
	original := append([]entities.Expense(nil), expenses...)

	filtered := FilterMonth(june2025, expenses)

	require.Len(t, filtered, 2)
	assert.Equal(t, "2025-06-20", filtered[0].DateString())
	assert.Equal(t, "2025-06-15", filtered[1].DateString())
	assert.Equal(t, original, expenses)
}

func TestPercentage(t *testing.T) {
	assertDecimal(t, "0", Percentage(decimal.NewFromInt(5), decimal.Zero))
	assertDecimal(t, "66.67", Percentage(decimal.NewFromInt(2), decimal.NewFromInt(3)))
	assertDecimal(t, "100", Percentage(decimal.NewFromInt(3), decimal.NewFromInt(3)))
}
