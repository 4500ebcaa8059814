package paystub

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wzsamuels/budget-project/internal/calendar"
)

// datePattern finds "01/15/2024", "1/5/24" or "January 15, 2024" / "Jan. 5, 2024".
var datePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})|([A-Z][a-z]+)\.? (\d{1,2}), (\d{4})`)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// parseDateMatch turns a datePattern submatch into a calendar date.
func parseDateMatch(m []string) (calendar.Date, bool) {
	if m[1] != "" {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, ok := parseYear(m[3])
		if !ok {
			return calendar.Date{}, false
		}
		d, err := calendar.New(year, time.Month(month), day)
		return d, err == nil
	}

	month, ok := monthNames[strings.ToLower(m[4])]
	if !ok {
		return calendar.Date{}, false
	}
	day, _ := strconv.Atoi(m[5])
	year, _ := strconv.Atoi(m[6])
	d, err := calendar.New(year, month, day)
	return d, err == nil
}

// parseYear accepts four-digit years and two-digit years in the 2000s.
func parseYear(s string) (int, bool) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	switch len(s) {
	case 2:
		return 2000 + y, true
	case 4:
		return y, true
	}
	return 0, false
}
