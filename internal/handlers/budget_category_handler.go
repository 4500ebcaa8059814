package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/services"
)

// BudgetCategoryHandler handles budget category requests
type BudgetCategoryHandler struct {
	categoryService services.BudgetCategoryServicer
	auditService    services.AuditServicer
}

// NewBudgetCategoryHandler creates a new BudgetCategoryHandler
func NewBudgetCategoryHandler(categoryService services.BudgetCategoryServicer, auditService services.AuditServicer) *BudgetCategoryHandler {
	return &BudgetCategoryHandler{categoryService: categoryService, auditService: auditService}
}

// BudgetCategoryRequest represents the request payload for creating or updating a category
type BudgetCategoryRequest struct {
	Name          string              `json:"name" binding:"required,max=100"`
	Type          models.CategoryType `json:"type" binding:"required,category_type" example:"VARIABLE"`
	MonthlyBudget money.Money         `json:"monthly_budget" binding:"gte=0"`
}

func (r BudgetCategoryRequest) toInput() services.BudgetCategoryInput {
	return services.BudgetCategoryInput{Name: r.Name, Type: r.Type, MonthlyBudget: r.MonthlyBudget}
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BudgetCategoryRequest true "Category details"
// @Success     201 {object} models.BudgetCategory "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *BudgetCategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CATEGORY", "budget_category", category.ID, c.ClientIP(),
		map[string]interface{}{"name": category.Name, "type": category.Type})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories handles listing categories
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.BudgetCategory "Categories by name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *BudgetCategoryHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory handles retrieving a category
// @Summary     Get category by ID
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} models.BudgetCategory "Category"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *BudgetCategoryHandler) GetCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(userID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// UpdateCategory handles updating a category
// @Summary     Update category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Category ID"
// @Param       request body BudgetCategoryRequest true "Category details"
// @Success     200 {object} models.BudgetCategory "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *BudgetCategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CATEGORY", "budget_category", category.ID, c.ClientIP(),
		map[string]interface{}{"name": category.Name, "type": category.Type, "monthly_budget": category.MonthlyBudget})

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a category. Its transactions and recurring expenses become uncategorized.
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} map[string]string "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *BudgetCategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CATEGORY", "budget_category", categoryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// SeedDefaultCategories handles adding the starter categories
// @Summary     Seed default categories
// @Description Add the starter categories the user does not have yet
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     201 {array}  models.BudgetCategory "Categories created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/seed [post]
func (h *BudgetCategoryHandler) SeedDefaultCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	created, err := h.categoryService.SeedDefaults(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if len(created) > 0 {
		h.auditService.Log(userID, "SEED_CATEGORIES", "budget_category", "", c.ClientIP(),
			map[string]interface{}{"count": len(created)})
	}

	c.JSON(http.StatusCreated, gin.H{"categories": created})
}
