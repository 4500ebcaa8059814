package recurrence

import (
	"github.com/wzsamuels/budget-project/internal/calendar"
)

// stepper advances a date by exactly one period of a frequency.
type stepper interface {
	Next(d calendar.Date) calendar.Date
}

var steppers = map[Frequency]stepper{
	Weekly:      dayStepper{days: 7},
	Biweekly:    dayStepper{days: 14},
	Semimonthly: semimonthlyStepper{},
	Monthly:     monthlyStepper{},
	Yearly:      yearlyStepper{},
}

// dayStepper adds a fixed number of days.
type dayStepper struct {
	days int
}

func (s dayStepper) Next(d calendar.Date) calendar.Date {
	return d.AddDays(s.days)
}

// monthlyStepper keeps the day of month, clamped to the target month's length.
type monthlyStepper struct{}

func (monthlyStepper) Next(d calendar.Date) calendar.Date {
	return d.AddMonths(1)
}

// yearlyStepper keeps month and day; Feb 29 lands on Feb 28 in common years.
type yearlyStepper struct{}

func (yearlyStepper) Next(d calendar.Date) calendar.Date {
	return d.AddYears(1)
}

// semimonthlyStepper pays on the 15th and on the last day of each month.
//
//	day < 15  -> the 15th of the same month
//	day == 15 -> the last day of the same month
//	day > 15  -> the 15th of the next month
type semimonthlyStepper struct{}

const midMonth = 15

func (semimonthlyStepper) Next(d calendar.Date) calendar.Date {
	switch {
	case d.Day < midMonth:
		return d.WithDay(midMonth)
	case d.Day == midMonth:
		return d.EndOfMonth()
	default:
		return d.StartOfMonth().AddMonths(1).WithDay(midMonth)
	}
}
