package paystub

import (
	"regexp"

	"github.com/wzsamuels/budget-project/internal/money"
)

// amountPattern matches currency figures with exactly two decimals, with or
// without thousands separators: "80.00", "1,520.00", "1520.00".
var amountPattern = regexp.MustCompile(`(?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2}\b`)

// lineAmounts returns every currency figure on the line, left to right.
func lineAmounts(line string) []money.Money {
	matches := amountPattern.FindAllString(line, -1)
	out := make([]money.Money, 0, len(matches))
	for _, m := range matches {
		amt, err := money.Parse(m)
		if err != nil {
			continue
		}
		out = append(out, amt)
	}
	return out
}

// lineAmount picks the current-period figure from a payroll line.
// Payroll layouts put year-to-date last ("hours, current, YTD" or
// "current, YTD"), so with several figures the last one is dropped and the
// largest of the rest wins over an hours count.
func lineAmount(line string) (money.Money, bool) {
	amounts := lineAmounts(line)
	switch len(amounts) {
	case 0:
		return money.Zero, false
	case 1:
		return amounts[0], true
	}
	best := amounts[0]
	for _, a := range amounts[1 : len(amounts)-1] {
		best = max(best, a)
	}
	return best, true
}
