package summary

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the YYYY-MM designator accepted by ParseMonth.
const MonthLayout = "2006-01"

var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

// Month designates a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM designator.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String formats the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Window returns the half-open interval [first of month, first of next month).
// December rolls over into January of the following year.
func (m Month) Window() (start, end time.Time) {
	start = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// Contains reports whether date falls inside the month's window.
func (m Month) Contains(date time.Time) bool {
	start, end := m.Window()
	return !date.Before(start) && date.Before(end)
}
