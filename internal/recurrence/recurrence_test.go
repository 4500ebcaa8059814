package recurrence

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wzsamuels/budget-project/internal/calendar"
)

func d(s string) calendar.Date { return calendar.MustParse(s) }

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		f    Frequency
		from string
		want string
	}{
		{"weekly", Weekly, "2024-12-28", "2025-01-04"},
		{"biweekly", Biweekly, "2024-02-16", "2024-03-01"},
		{"semimonthly_before_mid", Semimonthly, "2024-01-01", "2024-01-15"},
		{"semimonthly_on_mid", Semimonthly, "2024-01-15", "2024-01-31"},
		{"semimonthly_after_mid", Semimonthly, "2024-01-20", "2024-02-15"},
		{"semimonthly_leap_february", Semimonthly, "2024-02-15", "2024-02-29"},
		{"semimonthly_common_february", Semimonthly, "2023-02-15", "2023-02-28"},
		{"semimonthly_month_end_rolls", Semimonthly, "2024-01-31", "2024-02-15"},
		{"semimonthly_year_end_rolls", Semimonthly, "2024-12-31", "2025-01-15"},
		{"monthly_clamp_31", Monthly, "2024-01-31", "2024-02-29"},
		{"monthly_clamp_30", Monthly, "2024-01-30", "2024-02-29"},
		{"monthly_plain", Monthly, "2024-03-10", "2024-04-10"},
		{"monthly_december", Monthly, "2024-12-05", "2025-01-05"},
		{"yearly_leap_clamp", Yearly, "2024-02-29", "2025-02-28"},
		{"yearly_plain", Yearly, "2024-07-04", "2025-07-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(d(tt.from), tt.f).String())
		})
	}
}

func TestNextAlwaysMovesForward(t *testing.T) {
	start := d("2023-01-01")
	end := d("2025-12-31")
	for day := start; !day.After(end); day = day.AddDays(1) {
		for _, f := range Frequencies() {
			next := f.Next(day)
			require.True(t, next.After(day), "%s from %s gave %s", f, day, next)
			_, err := calendar.New(next.Year, next.Month, next.Day)
			require.NoError(t, err, "%s from %s gave invalid %v", f, day, next)
		}
	}
}

func TestSemimonthlyTwicePerMonth(t *testing.T) {
	dates := slices.Collect(OccurrencesUntil(d("2023-12-31"), Semimonthly, d("2024-12-31")))
	require.Len(t, dates, 24)
	for i := 0; i < len(dates); i += 2 {
		assert.Equal(t, 15, dates[i].Day)
		assert.Equal(t, dates[i].EndOfMonth(), dates[i+1])
	}
}

func TestOccurrencesUntilMonthly(t *testing.T) {
	dates := slices.Collect(OccurrencesUntil(d("2024-01-01"), Monthly, d("2024-12-31")))
	require.Len(t, dates, 11)
	assert.Equal(t, "2024-02-01", dates[0].String())
	assert.Equal(t, "2024-12-01", dates[10].String())
	for _, o := range dates {
		assert.False(t, o.Before(d("2024-01-01")))
		assert.False(t, o.After(d("2024-12-31")))
	}
}

func TestOccurrencesUntilEdges(t *testing.T) {
	t.Run("empty_when_first_step_passes_horizon", func(t *testing.T) {
		dates := slices.Collect(OccurrencesUntil(d("2024-12-20"), Monthly, d("2024-12-31")))
		assert.Empty(t, dates)
	})

	t.Run("horizon_is_inclusive", func(t *testing.T) {
		dates := slices.Collect(OccurrencesUntil(d("2024-12-24"), Weekly, d("2024-12-31")))
		assert.Equal(t, []calendar.Date{d("2024-12-31")}, dates)
	})

	t.Run("restartable", func(t *testing.T) {
		seq := OccurrencesUntil(d("2024-01-05"), Biweekly, d("2024-06-30"))
		assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
	})

	t.Run("early_break", func(t *testing.T) {
		var seen []calendar.Date
		for o := range OccurrencesUntil(d("2024-01-01"), Weekly, d("2024-12-31")) {
			seen = append(seen, o)
			if len(seen) == 3 {
				break
			}
		}
		assert.Len(t, seen, 3)
	})
}

func TestWalkIncludesFirst(t *testing.T) {
	dates := slices.Collect(Walk(d("2024-03-01"), Monthly, d("2024-05-31")))
	assert.Equal(t, []calendar.Date{d("2024-03-01"), d("2024-04-01"), d("2024-05-01")}, dates)
	assert.Empty(t, slices.Collect(Walk(d("2025-01-01"), Monthly, d("2024-12-31"))))
}

func TestFastForward(t *testing.T) {
	assert.Equal(t, d("2024-01-15"), FastForward(d("2023-10-15"), Monthly, d("2024-01-01")))
	assert.Equal(t, d("2024-03-01"), FastForward(d("2024-03-01"), Monthly, d("2024-01-01")))
	assert.Equal(t, d("2024-02-28"), FastForward(d("2021-02-28"), Yearly, d("2024-01-01")))
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		freq     Frequency
		due      string
		from, to string
	}{
		{Monthly, "2024-03-15", "2024-03-15", "2024-04-14"},
		{Monthly, "2024-01-31", "2024-01-31", "2024-02-28"},
		{Yearly, "2024-02-10", "2024-02-10", "2025-02-09"},
		{Biweekly, "2024-02-10", "2024-02-10", "2024-02-23"},
		{Semimonthly, "2024-02-15", "2024-02-15", "2024-02-28"},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq)+" "+tt.due, func(t *testing.T) {
			from, to := Period(tt.freq, d(tt.due))
			assert.Equal(t, d(tt.from), from)
			assert.Equal(t, d(tt.to), to)
		})
	}
}

func TestCountWithin(t *testing.T) {
	jan1, dec31 := d("2024-01-01"), d("2024-12-31")
	assert.Equal(t, 12, CountWithin(d("2023-06-10"), Monthly, jan1, dec31))
	assert.Equal(t, 1, CountWithin(d("2020-09-01"), Yearly, jan1, dec31))
	assert.Equal(t, 26, CountWithin(d("2024-01-05"), Biweekly, jan1, dec31))
	assert.Equal(t, 0, CountWithin(d("2025-01-01"), Yearly, jan1, dec31))
	assert.Equal(t, 3, CountWithin(d("2024-04-10"), Monthly, jan1, d("2024-06-30")))
}

func TestParseFrequency(t *testing.T) {
	f, err := ParseFrequency("biweekly")
	require.NoError(t, err)
	assert.Equal(t, Biweekly, f)

	_, err = ParseFrequency("fortnightly")
	assert.Error(t, err)

	assert.True(t, Monthly.ValidForRule())
	assert.False(t, Weekly.ValidForRule())
}

func TestNextPanicsOnUnknownFrequency(t *testing.T) {
	assert.Panics(t, func() { Frequency("DAILY").Next(calendar.MustNew(2024, time.January, 1)) })
}
