package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/wzsamuels/budget-project/internal/calendar"
	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/projection"
)

// recurringExpenseService handles recurring expense business logic.
type recurringExpenseService struct {
	db *gorm.DB
}

// NewRecurringExpenseService creates a new RecurringExpenseServicer.
func NewRecurringExpenseService(db *gorm.DB) RecurringExpenseServicer {
	return &recurringExpenseService{db: db}
}

func (s *recurringExpenseService) validate(tx *gorm.DB, userID string, in RecurringExpenseInput) error {
	if strings.TrimSpace(in.Description) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !in.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !in.Frequency.ValidForRule() {
		return apperrors.WithMessage(apperrors.ErrInvalidFrequency, "recurring expenses repeat MONTHLY or YEARLY")
	}
	if in.StartDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidDate, "start date is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return apperrors.WithMessage(apperrors.ErrInvalidDate, "end date cannot be before start date")
	}
	return ensureCategory(tx, userID, in.CategoryID)
}

// ensureCategory checks that an optional category belongs to the user.
func ensureCategory(tx *gorm.DB, userID string, categoryID *string) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	var count int64
	err := tx.Model(&models.BudgetCategory{}).
		Where("id = ? AND user_id = ?", *categoryID, userID).
		Count(&count).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// CreateRecurringExpense creates an active rule whose first due date is its
// start date.
func (s *recurringExpenseService) CreateRecurringExpense(userID string, in RecurringExpenseInput) (*models.RecurringExpense, error) {
	if err := s.validate(s.db, userID, in); err != nil {
		return nil, err
	}

	expense := &models.RecurringExpense{
		UserID:      userID,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Frequency:   in.Frequency,
		StartDate:   in.StartDate,
		NextDueDate: in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    true,
		CategoryID:  normalizeID(in.CategoryID),
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetRecurringExpense retrieves a rule by ID for a specific user.
func (s *recurringExpenseService) GetRecurringExpense(userID, expenseID string) (*models.RecurringExpense, error) {
	return findRecurringExpense(s.db, userID, expenseID)
}

func findRecurringExpense(db *gorm.DB, userID, expenseID string) (*models.RecurringExpense, error) {
	var expense models.RecurringExpense
	if err := db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// ListRecurringExpenses lists a user's rules by next due date.
func (s *recurringExpenseService) ListRecurringExpenses(userID string, activeOnly bool) ([]models.RecurringExpense, error) {
	q := s.db.Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	expenses := []models.RecurringExpense{}
	if err := q.Order("next_due_date ASC, id ASC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// UpdateRecurringExpense edits a rule. The due-date cursor restarts at the
// new start date.
func (s *recurringExpenseService) UpdateRecurringExpense(userID, expenseID string, in RecurringExpenseInput) (*models.RecurringExpense, error) {
	expense, err := s.GetRecurringExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(s.db, userID, in); err != nil {
		return nil, err
	}

	expense.Description = strings.TrimSpace(in.Description)
	expense.Amount = in.Amount
	expense.Frequency = in.Frequency
	expense.StartDate = in.StartDate
	expense.NextDueDate = in.StartDate
	expense.EndDate = in.EndDate
	expense.CategoryID = normalizeID(in.CategoryID)

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// StopRecurringExpense deactivates a rule as of today. Already stopped rules
// are returned unchanged.
func (s *recurringExpenseService) StopRecurringExpense(userID, expenseID string, today calendar.Date) (*models.RecurringExpense, error) {
	expense, err := s.GetRecurringExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsActive {
		return expense, nil
	}

	expense.IsActive = false
	expense.EndDate = &today
	err = s.db.Model(expense).Updates(map[string]interface{}{
		"is_active": false,
		"end_date":  today,
	}).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// SkipRecurringExpense moves the due date past the current occurrence
// without recording a payment.
func (s *recurringExpenseService) SkipRecurringExpense(userID, expenseID string) (*models.RecurringExpense, error) {
	var expense *models.RecurringExpense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		expense, err = findRecurringExpense(tx, userID, expenseID)
		if err != nil {
			return err
		}
		if !expense.IsActive {
			return apperrors.ErrRecurringExpenseInactive
		}
		return advanceDue(tx, expense)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// MarkRecurringExpensePaid records the current occurrence as an expense
// transaction and advances the due date, both or neither.
func (s *recurringExpenseService) MarkRecurringExpensePaid(
	userID string,
	expenseID string,
	amount *money.Money,
	date *calendar.Date,
) (*models.RecurringExpense, *models.Transaction, error) {
	if amount != nil && !amount.IsPositive() {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	var expense *models.RecurringExpense
	var payment models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		expense, err = findRecurringExpense(tx, userID, expenseID)
		if err != nil {
			return err
		}
		if !expense.IsActive {
			return apperrors.ErrRecurringExpenseInactive
		}

		payment = projection.Payment(expense, amount, date)
		if err := tx.Create(&payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return advanceDue(tx, expense)
	})
	if err != nil {
		return nil, nil, err
	}
	return expense, &payment, nil
}

func advanceDue(tx *gorm.DB, expense *models.RecurringExpense) error {
	next := projection.Advance(expense)
	if err := tx.Model(expense).Update("next_due_date", next).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expense.NextDueDate = next
	return nil
}

// DeleteRecurringExpense removes a rule. Transactions logged against it are
// kept and lose the reference.
func (s *recurringExpenseService) DeleteRecurringExpense(userID, expenseID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		expense, err := findRecurringExpense(tx, userID, expenseID)
		if err != nil {
			return err
		}
		err = tx.Model(&models.Transaction{}).
			Where("recurring_expense_id = ? AND user_id = ?", expense.ID, userID).
			Update("recurring_expense_id", nil).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
