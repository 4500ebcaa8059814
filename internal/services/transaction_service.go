package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

func (s *transactionService) validate(userID string, in TransactionInput) error {
	if !in.Type.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be INCOME or EXPENSE")
	}
	if !in.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidDate, "date is required")
	}
	if err := ensureCategory(s.db, userID, in.CategoryID); err != nil {
		return err
	}
	if id := normalizeID(in.RecurringExpenseID); id != nil {
		if _, err := findRecurringExpense(s.db, userID, *id); err != nil {
			return err
		}
	}
	return nil
}

// CreateTransaction records a one-off income or expense.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	if err := s.validate(userID, in); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:             userID,
		Description:        strings.TrimSpace(in.Description),
		Amount:             in.Amount,
		Date:               in.Date,
		Type:               in.Type,
		CategoryID:         normalizeID(in.CategoryID),
		RecurringExpenseID: normalizeID(in.RecurringExpenseID),
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetTransaction retrieves a transaction by ID for a specific user.
func (s *transactionService) GetTransaction(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions retrieves a page of a user's transactions, newest first.
func (s *transactionService) ListTransactions(
	userID string,
	page pagination.PageRequest,
	filter TransactionFilter,
) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Scopes(pagination.Within("date", filter.Range))
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.RecurringExpenseID != nil {
		base = base.Where("recurring_expense_id = ?", *filter.RecurringExpenseID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	err := base.Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateTransaction replaces a transaction's fields.
func (s *transactionService) UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransaction(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(userID, in); err != nil {
		return nil, err
	}

	transaction.Description = strings.TrimSpace(in.Description)
	transaction.Amount = in.Amount
	transaction.Date = in.Date
	transaction.Type = in.Type
	transaction.CategoryID = normalizeID(in.CategoryID)
	transaction.RecurringExpenseID = normalizeID(in.RecurringExpenseID)

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction deletes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransaction(userID, transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
