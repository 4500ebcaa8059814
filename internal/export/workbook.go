// Package export renders reports as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/wzsamuels/budget-project/internal/projection"
)

// ContentType is the MIME type of the workbooks written here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	summarySheet   = "Summary"
	monthlySheet   = "Monthly"
	recurringSheet = "Recurring"
)

var recurringHeadings = []string{
	"Description", "Frequency", "Amount", "Next Due", "Annual Cost", "Projected Cost",
}

var monthlyHeadings = []string{
	"Month", "Gross", "Tax", "Expense", "Projected Gross", "Projected Tax", "Projected Expense", "Estimated",
}

// AnnualWorkbook builds the year-to-date summary, the twelve monthly buckets
// and one row per recurring expense. Amounts are written in dollars.
func AnnualWorkbook(r projection.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	for _, sheet := range []string{monthlySheet, recurringSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}

	summary := [][]any{
		{"Year", r.Year},
		{"As of", r.AsOf.String()},
		{"Gross income YTD", r.GrossIncomeYTD.Decimal().InexactFloat64()},
		{"Net income YTD", r.NetIncomeYTD.Decimal().InexactFloat64()},
		{"Taxes YTD", r.TaxesYTD.Decimal().InexactFloat64()},
		{"Pre-tax savings YTD", r.PreTaxSavingsYTD.Decimal().InexactFloat64()},
		{"Expenses YTD", r.ExpensesYTD.Decimal().InexactFloat64()},
		{"Savings rate %", r.SavingsRate},
		{"Effective tax rate %", r.EffectiveTaxRate},
		{"Month income", r.MonthIncome.Decimal().InexactFloat64()},
		{"Month expenses", r.MonthExpenses.Decimal().InexactFloat64()},
		{"Cash flow", r.CashFlow.Decimal().InexactFloat64()},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, monthlySheet, 1, headingRow(monthlyHeadings)); err != nil {
		return nil, err
	}
	for i, b := range r.MonthlyBuckets {
		row := []any{
			b.Month.String(),
			b.Gross.Decimal().InexactFloat64(),
			b.Tax.Decimal().InexactFloat64(),
			b.Expense.Decimal().InexactFloat64(),
			b.ProjectedGross.Decimal().InexactFloat64(),
			b.ProjectedTax.Decimal().InexactFloat64(),
			b.ProjectedExpense.Decimal().InexactFloat64(),
			b.Estimated,
		}
		if err := setRow(f, monthlySheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, recurringSheet, 1, headingRow(recurringHeadings)); err != nil {
		return nil, err
	}
	for i, rule := range r.Rules {
		row := []any{
			rule.Description,
			rule.Frequency.String(),
			rule.Amount.Decimal().InexactFloat64(),
			rule.NextDueDate.String(),
			rule.AnnualCost.Decimal().InexactFloat64(),
			rule.ProjectedCost.Decimal().InexactFloat64(),
		}
		if err := setRow(f, recurringSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func headingRow(headings []string) []any {
	row := make([]any, len(headings))
	for i, h := range headings {
		row[i] = h
	}
	return row
}

// WriteAnnualReport streams the annual workbook to w.
func WriteAnnualReport(w io.Writer, r projection.Report) error {
	f, err := AnnualWorkbook(r)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	return f.Write(w)
}

// Filename names the annual workbook for a download.
func Filename(year int) string {
	return fmt.Sprintf("budget-%d.xlsx", year)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
