package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/recurrence"
	"github.com/wzsamuels/budget-project/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a fresh user id. Users live in the identity provider, so
// there is no row to create.
func NewUserID() string {
	return uuid.New()
}

// CreateTestCategory creates a budget category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.BudgetCategory {
	t.Helper()

	category := &models.BudgetCategory{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Category %d", nextID()),
		Type:          categoryType,
		MonthlyBudget: 50000,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestPaycheck creates a paycheck of $2,000.00 gross with $200.00 of
// federal tax and $100.00 of 401k on the given date.
func CreateTestPaycheck(t *testing.T, db *gorm.DB, userID string, payDate calendar.Date) *models.Paycheck {
	t.Helper()

	paycheck := &models.Paycheck{
		UserID:       userID,
		EmployerName: fmt.Sprintf("Employer %d", nextID()),
		PayDate:      payDate,
		GrossAmount:  200000,
		NetAmount:    170000,
		Deductions: []models.Deduction{
			{Position: 0, Name: "Federal Income Tax", Amount: 20000, Category: models.DeductionCategoryTax},
			{Position: 1, Name: "401k", Amount: 10000, Category: models.DeductionCategoryRetirement, IsPreTax: true},
		},
	}
	if err := db.Create(paycheck).Error; err != nil {
		t.Fatalf("failed to create test paycheck: %v", err)
	}
	return paycheck
}

// CreateTestRecurringExpense creates an active rule first due on start.
func CreateTestRecurringExpense(
	t *testing.T,
	db *gorm.DB,
	userID string,
	amount money.Money,
	frequency recurrence.Frequency,
	start calendar.Date,
) *models.RecurringExpense {
	t.Helper()

	expense := &models.RecurringExpense{
		UserID:      userID,
		Description: fmt.Sprintf("Bill %d", nextID()),
		Amount:      amount,
		Frequency:   frequency,
		StartDate:   start,
		NextDueDate: start,
		IsActive:    true,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test recurring expense: %v", err)
	}
	return expense
}

// CreateTestTransaction creates a transaction of the given type and amount.
func CreateTestTransaction(
	t *testing.T,
	db *gorm.DB,
	userID string,
	txType models.TransactionType,
	amount money.Money,
	date calendar.Date,
) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Description: fmt.Sprintf("Transaction %d", nextID()),
		Type:        txType,
		Amount:      amount,
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
