package projection

import (
	"time"

	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/recurrence"
)

// Paid records, per recurring expense ID, the dates of transactions logged
// against it.
type Paid map[string][]calendar.Date

// PaidPeriods indexes the transactions that reference a recurring expense.
func PaidPeriods(transactions []models.Transaction) Paid {
	paid := make(Paid)
	for _, t := range transactions {
		if t.RecurringExpenseID == nil || *t.RecurringExpenseID == "" {
			continue
		}
		paid[*t.RecurringExpenseID] = append(paid[*t.RecurringExpenseID], t.Date)
	}
	return paid
}

// Covers reports whether a payment for the rule is dated within
// [due, next(due)). A late payment for an earlier occurrence falls before due
// and does not hide this one.
func (p Paid) Covers(rule *models.RecurringExpense, due calendar.Date) bool {
	from, to := recurrence.Period(rule.Frequency, due)
	for _, d := range p[rule.ID] {
		if d.Between(from, to) {
			return true
		}
	}
	return false
}

// Occurrences lists the unpaid due dates of rule within [from, to]. Walking
// starts at the rule's next due date, moved forward to from when it lies
// earlier. Inactive rules have no occurrences and ended rules stop at their
// end date.
func Occurrences(rule *models.RecurringExpense, from, to calendar.Date, paid Paid) []calendar.Date {
	if !rule.IsActive || !rule.Frequency.Valid() {
		return nil
	}
	start := rule.NextDueDate
	if start.IsZero() {
		start = rule.StartDate
	}
	if start.IsZero() {
		return nil
	}
	horizon := to
	if rule.EndsBefore(horizon) {
		horizon = *rule.EndDate
	}

	var out []calendar.Date
	for due := range recurrence.Walk(recurrence.FastForward(start, rule.Frequency, from), rule.Frequency, horizon) {
		if paid.Covers(rule, due) {
			continue
		}
		out = append(out, due)
	}
	return out
}

// AnnualCost is what the rule's schedule costs over the calendar year, paid
// or not. It walks the same dates as Occurrences, anchored at the start date
// and cut off at the end date.
func AnnualCost(rule *models.RecurringExpense, year int) money.Money {
	if !rule.Frequency.Valid() || rule.StartDate.IsZero() {
		return money.Zero
	}
	jan1 := calendar.MustNew(year, time.January, 1)
	horizon := jan1.EndOfYear()
	if rule.EndsBefore(horizon) {
		horizon = *rule.EndDate
	}
	n := recurrence.CountWithin(rule.StartDate, rule.Frequency, jan1, horizon)
	return rule.Amount * money.Money(n)
}

// Advance returns the due date that follows the rule's current one, used
// when the current occurrence is paid or skipped.
func Advance(rule *models.RecurringExpense) calendar.Date {
	return rule.Frequency.Next(rule.NextDueDate)
}

// Payment builds the expense transaction that honors the rule's current
// occurrence. A nil amount uses the rule amount and a nil date the due date.
func Payment(rule *models.RecurringExpense, amount *money.Money, date *calendar.Date) models.Transaction {
	ruleID := rule.ID
	t := models.Transaction{
		UserID:             rule.UserID,
		Description:        rule.Description,
		Amount:             rule.Amount,
		Date:               rule.NextDueDate,
		Type:               models.TransactionTypeExpense,
		CategoryID:         rule.CategoryID,
		RecurringExpenseID: &ruleID,
	}
	if amount != nil {
		t.Amount = *amount
	}
	if date != nil {
		t.Date = *date
	}
	return t
}
