package services

import (
	"context"
	"io"

	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/pagination"
	"github.com/wzsamuels/budget-project/internal/projection"
	"github.com/wzsamuels/budget-project/internal/recurrence"
)

// DeductionInput is one deduction line of a paycheck being saved.
type DeductionInput struct {
	Name     string
	Amount   money.Money
	Category models.DeductionCategory
	IsPreTax bool
}

// PaycheckInput carries the user-editable fields of a paycheck. Net pay is
// always derived.
type PaycheckInput struct {
	EmployerName string
	PayDate      calendar.Date
	GrossAmount  money.Money
	Deductions   []DeductionInput
}

// PaycheckServicer defines the contract for paycheck-related business logic.
type PaycheckServicer interface {
	CreatePaycheck(userID string, in PaycheckInput) (*models.Paycheck, error)
	GetPaycheck(userID, paycheckID string) (*models.Paycheck, error)
	ListPaychecks(userID string, year int, page pagination.PageRequest) (*pagination.PageResponse[models.Paycheck], error)
	UpdatePaycheck(userID, paycheckID string, in PaycheckInput) (*models.Paycheck, error)
	DeletePaycheck(userID, paycheckID string) error
	ProjectPaycheck(ctx context.Context, userID, paycheckID string, frequency recurrence.Frequency, today calendar.Date) ([]models.Paycheck, error)
}

// RecurringExpenseInput carries the user-editable fields of a recurring expense.
type RecurringExpenseInput struct {
	Description string
	Amount      money.Money
	Frequency   recurrence.Frequency
	StartDate   calendar.Date
	EndDate     *calendar.Date
	CategoryID  *string
}

// RecurringExpenseServicer defines the contract for recurring expense business logic.
type RecurringExpenseServicer interface {
	CreateRecurringExpense(userID string, in RecurringExpenseInput) (*models.RecurringExpense, error)
	GetRecurringExpense(userID, expenseID string) (*models.RecurringExpense, error)
	ListRecurringExpenses(userID string, activeOnly bool) ([]models.RecurringExpense, error)
	UpdateRecurringExpense(userID, expenseID string, in RecurringExpenseInput) (*models.RecurringExpense, error)
	StopRecurringExpense(userID, expenseID string, today calendar.Date) (*models.RecurringExpense, error)
	SkipRecurringExpense(userID, expenseID string) (*models.RecurringExpense, error)
	MarkRecurringExpensePaid(userID, expenseID string, amount *money.Money, date *calendar.Date) (*models.RecurringExpense, *models.Transaction, error)
	DeleteRecurringExpense(userID, expenseID string) error
}

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	Description        string
	Amount             money.Money
	Date               calendar.Date
	Type               models.TransactionType
	CategoryID         *string
	RecurringExpenseID *string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Range              pagination.DateRange
	Type               *models.TransactionType
	CategoryID         *string
	RecurringExpenseID *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	GetTransaction(userID, transactionID string) (*models.Transaction, error)
	ListTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetCategoryInput carries the user-editable fields of a budget category.
type BudgetCategoryInput struct {
	Name          string
	Type          models.CategoryType
	MonthlyBudget money.Money
}

// BudgetCategoryServicer defines the contract for budget category business logic.
type BudgetCategoryServicer interface {
	CreateCategory(userID string, in BudgetCategoryInput) (*models.BudgetCategory, error)
	GetCategory(userID, categoryID string) (*models.BudgetCategory, error)
	ListCategories(userID string) ([]models.BudgetCategory, error)
	UpdateCategory(userID, categoryID string, in BudgetCategoryInput) (*models.BudgetCategory, error)
	DeleteCategory(userID, categoryID string) error
	SeedDefaults(userID string) ([]models.BudgetCategory, error)
}

// ReportServicer builds dashboard reports from stored records.
type ReportServicer interface {
	GetReport(userID string, today calendar.Date) (*projection.Report, error)
	ExportReport(userID string, today calendar.Date, w io.Writer) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
