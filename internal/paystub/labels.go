package paystub

import (
	"regexp"

	"github.com/wzsamuels/budget-project/internal/models"
)

// Label maps a payroll line label to the deduction it represents.
type Label struct {
	Name     string
	Category models.DeductionCategory
	PreTax   bool
}

var defaultLabels = []Label{
	{"Federal Income Tax", models.DeductionCategoryTax, false},
	{"Fed Tax", models.DeductionCategoryTax, false},
	{"FITW", models.DeductionCategoryTax, false},
	{"Social Security", models.DeductionCategoryTax, false},
	{"Soc Sec", models.DeductionCategoryTax, false},
	{"OASDI", models.DeductionCategoryTax, false},
	{"SS", models.DeductionCategoryTax, false},
	{"Medicare", models.DeductionCategoryTax, false},
	{"Med Tax", models.DeductionCategoryTax, false},
	{"MED", models.DeductionCategoryTax, false},
	{"State Income Tax", models.DeductionCategoryTax, false},
	{"State Tax", models.DeductionCategoryTax, false},
	{"NY Tax", models.DeductionCategoryTax, false},
	{"CA Tax", models.DeductionCategoryTax, false},
	{"NC", models.DeductionCategoryTax, false},

	{"401k", models.DeductionCategoryRetirement, true},
	{"403b", models.DeductionCategoryRetirement, true},

	{"Dental", models.DeductionCategoryBenefit, true},
	{"Medical", models.DeductionCategoryBenefit, true},
	{"Health", models.DeductionCategoryBenefit, true},
	{"Vision", models.DeductionCategoryBenefit, true},

	{"HSA", models.DeductionCategoryHSA, true},
	{"FSA", models.DeductionCategoryHSA, true},
}

// DefaultLabels returns the built-in label table in match order.
func DefaultLabels() []Label {
	out := make([]Label, len(defaultLabels))
	copy(out, defaultLabels)
	return out
}

// wholeWord builds a case-insensitive whole-word matcher for a label.
func wholeWord(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(label) + `\b`)
}
