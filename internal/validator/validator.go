// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/recurrence"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("frequency", validateFrequency)
	_ = v.RegisterValidation("rule_frequency", validateRuleFrequency)
	_ = v.RegisterValidation("deduction_category", validateDeductionCategory)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("category_type", validateCategoryType)
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := calendar.Parse(fl.Field().String())
	return err == nil
}

func validateFrequency(fl validator.FieldLevel) bool {
	return recurrence.Frequency(fl.Field().String()).Valid()
}

func validateRuleFrequency(fl validator.FieldLevel) bool {
	return recurrence.Frequency(fl.Field().String()).ValidForRule()
}

func validateDeductionCategory(fl validator.FieldLevel) bool {
	return models.DeductionCategory(fl.Field().String()).Valid()
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}
