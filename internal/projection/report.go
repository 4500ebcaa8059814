// Package projection turns stored paychecks, recurring expenses and
// transactions into the year-to-date and 12-month figures shown on the
// dashboard, and builds the batches of projected records the services persist.
//
// Everything here is a pure function of its arguments.
package projection

import (
	"sort"
	"time"

	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/recurrence"
)

// RecentPaycheckLimit caps Report.RecentPaychecks.
const RecentPaycheckLimit = 5

// MonthBucket holds one calendar month of the year overview. The Projected*
// fields are the estimated share already included in Gross, Tax and Expense.
type MonthBucket struct {
	Month            time.Month  `json:"month"`
	Gross            money.Money `json:"gross"`
	Tax              money.Money `json:"tax"`
	Expense          money.Money `json:"expense"`
	ProjectedGross   money.Money `json:"projected_gross"`
	ProjectedTax     money.Money `json:"projected_tax"`
	ProjectedExpense money.Money `json:"projected_expense"`
	Estimated        bool        `json:"estimated"`
}

// PaycheckSummary is a paycheck row in the recent list.
type PaycheckSummary struct {
	ID           string        `json:"id"`
	EmployerName string        `json:"employer_name"`
	PayDate      calendar.Date `json:"pay_date"`
	GrossAmount  money.Money   `json:"gross_amount"`
	NetAmount    money.Money   `json:"net_amount"`
	Projected    bool          `json:"projected"`
}

// RuleSummary is a recurring expense row: what its schedule costs over the
// year and how much of that is still projected rather than logged.
type RuleSummary struct {
	ID            string               `json:"id"`
	Description   string               `json:"description"`
	Frequency     recurrence.Frequency `json:"frequency"`
	Amount        money.Money          `json:"amount"`
	NextDueDate   calendar.Date        `json:"next_due_date"`
	AnnualCost    money.Money          `json:"annual_cost"`
	ProjectedCost money.Money          `json:"projected_cost"`
}

// Report is the dashboard for one user as of one day.
type Report struct {
	UserID string        `json:"user_id"`
	Year   int           `json:"year"`
	AsOf   calendar.Date `json:"as_of"`

	GrossIncomeYTD   money.Money `json:"gross_income_ytd"`
	NetIncomeYTD     money.Money `json:"net_income_ytd"`
	TaxesYTD         money.Money `json:"taxes_ytd"`
	PreTaxSavingsYTD money.Money `json:"pre_tax_savings_ytd"`
	ExpensesYTD      money.Money `json:"expenses_ytd"`
	SavingsRate      float64     `json:"savings_rate"`
	EffectiveTaxRate float64     `json:"effective_tax_rate"`

	MonthIncome   money.Money `json:"month_income"`
	MonthExpenses money.Money `json:"month_expenses"`
	CashFlow      money.Money `json:"cash_flow"`

	MonthlyBuckets  [12]MonthBucket   `json:"monthly_buckets"`
	RecentPaychecks []PaycheckSummary `json:"recent_paychecks"`
	Rules           []RuleSummary     `json:"recurring_expenses"`
}

// window is the set of date ranges a report is computed over.
type window struct {
	today      calendar.Date
	yearStart  calendar.Date
	yearEnd    calendar.Date
	monthStart calendar.Date
	monthEnd   calendar.Date
}

func newWindow(today calendar.Date) window {
	return window{
		today:      today,
		yearStart:  today.StartOfYear(),
		yearEnd:    today.EndOfYear(),
		monthStart: today.StartOfMonth(),
		monthEnd:   today.EndOfMonth(),
	}
}

func (w window) inYear(d calendar.Date) bool      { return d.Year == w.today.Year }
func (w window) toDate(d calendar.Date) bool      { return d.Between(w.yearStart, w.today) }
func (w window) inMonth(d calendar.Date) bool     { return d.Between(w.monthStart, w.monthEnd) }
func (w window) monthToDate(d calendar.Date) bool { return d.Between(w.monthStart, w.today) }

// BuildReport aggregates a user's records into the dashboard report. Empty
// inputs produce an all-zero report.
func BuildReport(
	userID string,
	paychecks []models.Paycheck,
	rules []models.RecurringExpense,
	transactions []models.Transaction,
	today calendar.Date,
) Report {
	w := newWindow(today)
	r := Report{
		UserID:          userID,
		Year:            today.Year,
		AsOf:            today,
		RecentPaychecks: []PaycheckSummary{},
		Rules:           []RuleSummary{},
	}
	for i := range r.MonthlyBuckets {
		r.MonthlyBuckets[i].Month = time.Month(i + 1)
	}

	r.addPaychecks(w, paychecks)
	r.addTransactions(w, transactions)
	r.addRecurringExpenses(w, rules, transactions)

	r.SavingsRate = money.Percent(r.PreTaxSavingsYTD, r.GrossIncomeYTD)
	r.EffectiveTaxRate = money.Percent(r.TaxesYTD, r.GrossIncomeYTD)
	r.CashFlow = r.MonthIncome - r.MonthExpenses
	r.RecentPaychecks = recentPaychecks(w, paychecks)
	return r
}

func (r *Report) bucket(d calendar.Date) *MonthBucket {
	return &r.MonthlyBuckets[d.Month-1]
}

func (r *Report) addPaychecks(w window, paychecks []models.Paycheck) {
	for i := range paychecks {
		p := &paychecks[i]
		if !w.inYear(p.PayDate) {
			continue
		}
		tax := p.TaxTotal()

		b := r.bucket(p.PayDate)
		b.Gross += p.GrossAmount
		b.Tax += tax
		if p.Projected {
			b.ProjectedGross += p.GrossAmount
			b.ProjectedTax += tax
			b.Estimated = true
		}

		if w.toDate(p.PayDate) {
			r.GrossIncomeYTD += p.GrossAmount
			r.NetIncomeYTD += p.NetAmount
			r.TaxesYTD += tax
			r.PreTaxSavingsYTD += p.PreTaxSavingsTotal()
		}
		if w.inMonth(p.PayDate) {
			r.MonthIncome += p.NetAmount
		}
	}
}

func (r *Report) addTransactions(w window, transactions []models.Transaction) {
	for _, t := range transactions {
		if !w.inYear(t.Date) {
			continue
		}
		b := r.bucket(t.Date)
		switch t.Type {
		case models.TransactionTypeIncome:
			b.Gross += t.Amount
			if w.inMonth(t.Date) {
				r.MonthIncome += t.Amount
			}
		case models.TransactionTypeExpense:
			b.Expense += t.Amount
			if w.toDate(t.Date) {
				r.ExpensesYTD += t.Amount
			}
			if w.inMonth(t.Date) {
				r.MonthExpenses += t.Amount
			}
		}
	}
}

func (r *Report) addRecurringExpenses(w window, rules []models.RecurringExpense, transactions []models.Transaction) {
	paid := PaidPeriods(transactions)
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || !rule.Frequency.Valid() {
			continue
		}
		row := RuleSummary{
			ID:          rule.ID,
			Description: rule.Description,
			Frequency:   rule.Frequency,
			Amount:      rule.Amount,
			NextDueDate: rule.NextDueDate,
			AnnualCost:  AnnualCost(rule, w.today.Year),
		}
		for _, due := range Occurrences(rule, w.yearStart, w.yearEnd, paid) {
			row.ProjectedCost += rule.Amount
			b := r.bucket(due)
			b.Expense += rule.Amount
			b.ProjectedExpense += rule.Amount
			b.Estimated = true

			if !due.After(w.today) {
				r.ExpensesYTD += rule.Amount
				if w.monthToDate(due) {
					r.MonthExpenses += rule.Amount
				}
			}
		}
		r.Rules = append(r.Rules, row)
	}
}

func recentPaychecks(w window, paychecks []models.Paycheck) []PaycheckSummary {
	var past []models.Paycheck
	for _, p := range paychecks {
		if !p.PayDate.After(w.today) {
			past = append(past, p)
		}
	}
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].PayDate.After(past[j].PayDate)
	})
	if len(past) > RecentPaycheckLimit {
		past = past[:RecentPaycheckLimit]
	}

	out := make([]PaycheckSummary, 0, len(past))
	for _, p := range past {
		out = append(out, PaycheckSummary{
			ID:           p.ID,
			EmployerName: p.EmployerName,
			PayDate:      p.PayDate,
			GrossAmount:  p.GrossAmount,
			NetAmount:    p.NetAmount,
			Projected:    p.Projected,
		})
	}
	return out
}
