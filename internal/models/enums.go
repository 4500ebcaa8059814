package models

// DeductionCategory classifies a payroll deduction. It is the single source of
// truth for request validation, storage and report aggregation.
type DeductionCategory string

const (
	DeductionCategoryTax         DeductionCategory = "TAX"
	DeductionCategoryBenefit     DeductionCategory = "BENEFIT"
	DeductionCategoryRetirement  DeductionCategory = "RETIREMENT"
	DeductionCategoryHSA         DeductionCategory = "HSA"
	DeductionCategoryGarnishment DeductionCategory = "GARNISHMENT"
)

var deductionCategories = []DeductionCategory{
	DeductionCategoryTax,
	DeductionCategoryBenefit,
	DeductionCategoryRetirement,
	DeductionCategoryHSA,
	DeductionCategoryGarnishment,
}

// DeductionCategories returns every category in display order.
func DeductionCategories() []DeductionCategory {
	out := make([]DeductionCategory, len(deductionCategories))
	copy(out, deductionCategories)
	return out
}

// Valid reports whether c is a known category.
func (c DeductionCategory) Valid() bool {
	for _, known := range deductionCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsTax reports whether the deduction counts toward the tax burden.
func (c DeductionCategory) IsTax() bool {
	return c == DeductionCategoryTax
}

// IsPreTaxSavings reports whether the deduction counts as pre-tax savings.
func (c DeductionCategory) IsPreTaxSavings() bool {
	return c == DeductionCategoryRetirement || c == DeductionCategoryHSA
}

// TransactionType is the direction of a one-off transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// CategoryType describes how a budget category behaves month to month.
type CategoryType string

const (
	CategoryTypeFixed       CategoryType = "FIXED"
	CategoryTypeVariable    CategoryType = "VARIABLE"
	CategoryTypeSavingsGoal CategoryType = "SAVINGS_GOAL"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeFixed, CategoryTypeVariable, CategoryTypeSavingsGoal:
		return true
	}
	return false
}
