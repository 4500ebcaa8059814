package models

import (
	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/money"
)

// Transaction is a one-off income or expense. Transactions created by paying
// a recurring expense keep a reference to it.
type Transaction struct {
	Base
	UserID             string          `gorm:"not null;index" json:"user_id"`
	Description        string          `gorm:"not null" json:"description"`
	Amount             money.Money     `gorm:"type:bigint;not null" json:"amount"`
	Date               calendar.Date   `gorm:"type:date;not null;index" json:"date"`
	Type               TransactionType `gorm:"not null" json:"type"`
	CategoryID         *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	RecurringExpenseID *string         `gorm:"type:uuid;index" json:"recurring_expense_id,omitempty"`

	// Relationships
	Category *BudgetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
