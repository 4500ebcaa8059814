package recurrence

import (
	"iter"

	"github.com/wzsamuels/budget-project/internal/calendar"
)

// OccurrencesUntil yields every occurrence strictly after start and no later
// than horizon. The sequence is empty when the first step already passes the
// horizon. Ranging over it twice replays the same dates.
func OccurrencesUntil(start calendar.Date, f Frequency, horizon calendar.Date) iter.Seq[calendar.Date] {
	return func(yield func(calendar.Date) bool) {
		for d := f.Next(start); !d.After(horizon); d = f.Next(d) {
			if !yield(d) {
				return
			}
		}
	}
}

// Walk yields first itself (when it is within horizon) followed by
// OccurrencesUntil(first, f, horizon).
func Walk(first calendar.Date, f Frequency, horizon calendar.Date) iter.Seq[calendar.Date] {
	return func(yield func(calendar.Date) bool) {
		if first.After(horizon) || !yield(first) {
			return
		}
		for d := range OccurrencesUntil(first, f, horizon) {
			if !yield(d) {
				return
			}
		}
	}
}

// FastForward steps d forward until it is on or after bound.
func FastForward(d calendar.Date, f Frequency, bound calendar.Date) calendar.Date {
	for d.Before(bound) {
		d = f.Next(d)
	}
	return d
}

// Period returns the inclusive span an occurrence on d covers: from d up to
// the day before the next occurrence.
func Period(f Frequency, d calendar.Date) (from, to calendar.Date) {
	return d, f.Next(d).AddDays(-1)
}

// CountWithin returns how many times a schedule anchored at anchor fires
// within [from, to]. The anchor itself is the first occurrence.
func CountWithin(anchor calendar.Date, f Frequency, from, to calendar.Date) int {
	n := 0
	for range Walk(FastForward(anchor, f, from), f, to) {
		n++
	}
	return n
}
