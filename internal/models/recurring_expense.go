package models

import (
	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/recurrence"
)

// RecurringExpense is a bill that repeats monthly or yearly. NextDueDate is a
// cursor that only moves when the bill is paid or skipped.
type RecurringExpense struct {
	Base
	UserID      string               `gorm:"not null;index" json:"user_id"`
	Description string               `gorm:"not null" json:"description"`
	Amount      money.Money          `gorm:"type:bigint;not null" json:"amount"`
	Frequency   recurrence.Frequency `gorm:"not null" json:"frequency"`
	StartDate   calendar.Date        `gorm:"type:date;not null" json:"start_date"`
	NextDueDate calendar.Date        `gorm:"type:date;not null;index" json:"next_due_date"`
	EndDate     *calendar.Date       `gorm:"type:date" json:"end_date,omitempty"`
	IsActive    bool                 `gorm:"not null;index" json:"is_active"`
	CategoryID  *string              `gorm:"type:uuid" json:"category_id,omitempty"`

	// Relationships
	Category *BudgetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// EndsBefore reports whether the expense has an end date earlier than d.
func (r *RecurringExpense) EndsBefore(d calendar.Date) bool {
	return r.EndDate != nil && !r.EndDate.IsZero() && r.EndDate.Before(d)
}
