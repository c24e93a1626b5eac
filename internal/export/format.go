package export

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// formatAmount renders d with two decimals and comma thousands separators.
// The whole part is grouped by x/text as an integer so large totals keep
// every digit.
func formatAmount(d decimal.Decimal) string {
	rounded := d.Round(2)
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return rounded.StringFixed(2)
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	p := message.NewPrinter(language.English)
	return sign + p.Sprint(number.Decimal(n)) + "." + frac
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
