// Package recurrence computes pay dates and expense due dates.
//
// Each Frequency owns a stepper: a pure function from one occurrence to the
// next. Sequences are built by applying the stepper repeatedly, so a schedule
// is fully described by (frequency, anchor date) and can be replayed at will.
package recurrence

import (
	"fmt"
	"strings"

	"github.com/wzsamuels/budget-project/internal/calendar"
)

// Frequency is the closed set of supported cadences.
type Frequency string

const (
	Weekly      Frequency = "WEEKLY"
	Biweekly    Frequency = "BIWEEKLY"
	Semimonthly Frequency = "SEMIMONTHLY"
	Monthly     Frequency = "MONTHLY"
	Yearly      Frequency = "YEARLY"
)

// Frequencies lists every frequency in display order.
func Frequencies() []Frequency {
	return []Frequency{Weekly, Biweekly, Semimonthly, Monthly, Yearly}
}

// RuleFrequencies lists the cadences a recurring expense may use.
func RuleFrequencies() []Frequency {
	return []Frequency{Monthly, Yearly}
}

// ParseFrequency accepts any casing ("biweekly", "BIWEEKLY").
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("recurrence: unknown frequency %q", s)
	}
	return f, nil
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	_, ok := steppers[f]
	return ok
}

// ValidForRule reports whether f may drive a recurring expense.
func (f Frequency) ValidForRule() bool {
	return f == Monthly || f == Yearly
}

func (f Frequency) String() string { return string(f) }

// Next returns the occurrence after d. It panics on an unknown frequency;
// callers validate frequencies at the boundary with ParseFrequency or Valid.
func (f Frequency) Next(d calendar.Date) calendar.Date {
	s, ok := steppers[f]
	if !ok {
		panic(fmt.Sprintf("recurrence: unknown frequency %q", string(f)))
	}
	return s.Next(d)
}

// Next is f.Next(d).
func Next(d calendar.Date, f Frequency) calendar.Date {
	return f.Next(d)
}
