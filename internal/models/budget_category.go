package models

import "github.com/wzsamuels/budget-project/internal/money"

// BudgetCategory groups transactions and recurring expenses
type BudgetCategory struct {
	Base
	UserID        string       `gorm:"not null;index" json:"user_id"`
	Name          string       `gorm:"not null" json:"name"`
	Type          CategoryType `gorm:"not null" json:"type"`
	MonthlyBudget money.Money  `gorm:"type:bigint;not null" json:"monthly_budget"`
}

// DefaultCategories is the starter set offered to new users.
var DefaultCategories = []BudgetCategory{
	{Name: "Housing/Rent", Type: CategoryTypeFixed},
	{Name: "Utilities", Type: CategoryTypeVariable},
	{Name: "Internet", Type: CategoryTypeFixed},
	{Name: "Groceries", Type: CategoryTypeVariable},
	{Name: "Dining Out", Type: CategoryTypeVariable},
	{Name: "Transportation/Gas", Type: CategoryTypeVariable},
	{Name: "Entertainment", Type: CategoryTypeVariable},
	{Name: "Health", Type: CategoryTypeVariable},
	{Name: "Insurance", Type: CategoryTypeFixed},
	{Name: "Savings", Type: CategoryTypeSavingsGoal},
}

// AllModels lists every table in migration order.
func AllModels() []any {
	return []any{
		&BudgetCategory{},
		&Paycheck{},
		&Deduction{},
		&RecurringExpense{},
		&Transaction{},
		&AuditLog{},
	}
}
