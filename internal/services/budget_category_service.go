package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/models"
)

// budgetCategoryService handles budget category business logic.
type budgetCategoryService struct {
	db *gorm.DB
}

// NewBudgetCategoryService creates a new BudgetCategoryServicer.
func NewBudgetCategoryService(db *gorm.DB) BudgetCategoryServicer {
	return &budgetCategoryService{db: db}
}

func validateCategory(in BudgetCategoryInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !in.Type.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be FIXED, VARIABLE or SAVINGS_GOAL")
	}
	if in.MonthlyBudget < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly budget cannot be negative")
	}
	return nil
}

// nameTaken reports whether the user has another category with this name,
// ignoring case.
func (s *budgetCategoryService) nameTaken(userID, name, exceptID string) (bool, error) {
	var count int64
	q := s.db.Model(&models.BudgetCategory{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateCategory creates a new category
func (s *budgetCategoryService) CreateCategory(userID string, in BudgetCategoryInput) (*models.BudgetCategory, error) {
	if err := validateCategory(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	taken, err := s.nameTaken(userID, name, "")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if taken {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.BudgetCategory{
		UserID:        userID,
		Name:          name,
		Type:          in.Type,
		MonthlyBudget: in.MonthlyBudget,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategory retrieves a category by ID for a specific user
func (s *budgetCategoryService) GetCategory(userID, categoryID string) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// ListCategories returns all of a user's categories by name.
func (s *budgetCategoryService) ListCategories(userID string) ([]models.BudgetCategory, error) {
	categories := []models.BudgetCategory{}
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// UpdateCategory updates an existing category
func (s *budgetCategoryService) UpdateCategory(userID, categoryID string, in BudgetCategoryInput) (*models.BudgetCategory, error) {
	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := validateCategory(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	taken, err := s.nameTaken(userID, name, categoryID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if taken {
		return nil, apperrors.ErrDuplicateCategory
	}

	category.Name = name
	category.Type = in.Type
	category.MonthlyBudget = in.MonthlyBudget
	if err := s.db.Save(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory deletes a category. Transactions and recurring expenses in
// it become uncategorized.
func (s *budgetCategoryService) DeleteCategory(userID, categoryID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.BudgetCategory
		if err := tx.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for _, model := range []interface{}{&models.Transaction{}, &models.RecurringExpense{}} {
			err := tx.Model(model).
				Where("category_id = ? AND user_id = ?", categoryID, userID).
				Update("category_id", nil).Error
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Delete(&category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// SeedDefaults adds the starter categories the user does not have yet and
// returns the ones it created.
func (s *budgetCategoryService) SeedDefaults(userID string) ([]models.BudgetCategory, error) {
	existing, err := s.ListCategories(userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[strings.ToLower(c.Name)] = true
	}

	created := []models.BudgetCategory{}
	for _, d := range models.DefaultCategories {
		if have[strings.ToLower(d.Name)] {
			continue
		}
		created = append(created, models.BudgetCategory{
			UserID: userID,
			Name:   d.Name,
			Type:   d.Type,
		})
	}
	if len(created) == 0 {
		return created, nil
	}
	if err := s.db.Create(&created).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return created, nil
}
