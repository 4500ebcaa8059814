package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/recurrence"
	"github.com/wzsamuels/budget-project/internal/services"
)

// RecurringExpenseHandler handles recurring expense requests.
type RecurringExpenseHandler struct {
	recurringExpenseService services.RecurringExpenseServicer
	auditService            services.AuditServicer
}

// NewRecurringExpenseHandler creates a new RecurringExpenseHandler.
func NewRecurringExpenseHandler(
	recurringExpenseService services.RecurringExpenseServicer,
	auditService services.AuditServicer,
) *RecurringExpenseHandler {
	return &RecurringExpenseHandler{recurringExpenseService: recurringExpenseService, auditService: auditService}
}

// RecurringExpenseRequest represents the request payload for creating or
// replacing a recurring expense.
type RecurringExpenseRequest struct {
	Description string               `json:"description" binding:"required,max=255"`
	Amount      money.Money          `json:"amount" binding:"required,gt=0"`
	Frequency   recurrence.Frequency `json:"frequency" binding:"required,rule_frequency" example:"MONTHLY"`
	StartDate   string               `json:"start_date" binding:"required,iso_date"`
	EndDate     *string              `json:"end_date" binding:"omitempty,iso_date"`
	CategoryID  *string              `json:"category_id" binding:"omitempty,uuid"`
}

// MarkPaidRequest optionally overrides the amount and date of the payment.
type MarkPaidRequest struct {
	Amount *money.Money `json:"amount" binding:"omitempty,gt=0"`
	Date   *string      `json:"date" binding:"omitempty,iso_date"`
}

func (r RecurringExpenseRequest) toInput() (services.RecurringExpenseInput, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return services.RecurringExpenseInput{}, err
	}
	end, err := parseOptionalDate("end_date", r.EndDate)
	if err != nil {
		return services.RecurringExpenseInput{}, err
	}
	return services.RecurringExpenseInput{
		Description: r.Description,
		Amount:      r.Amount,
		Frequency:   r.Frequency,
		StartDate:   start,
		EndDate:     end,
		CategoryID:  r.CategoryID,
	}, nil
}

// CreateRecurringExpense handles creating a recurring expense
// @Summary     Create a recurring expense
// @Description Create a monthly or yearly bill. It is first due on its start date.
// @Tags        recurring-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecurringExpenseRequest true "Recurring expense details"
// @Success     201 {object} models.RecurringExpense "Recurring expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses [post]
func (h *RecurringExpenseHandler) CreateRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.recurringExpenseService.CreateRecurringExpense(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_RECURRING_EXPENSE", "recurring_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": expense.Amount, "frequency": expense.Frequency, "start_date": expense.StartDate})

	c.JSON(http.StatusCreated, gin.H{"recurring_expense": expense})
}

// ListRecurringExpenses handles listing recurring expenses
// @Summary     List recurring expenses
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       active query bool false "Only active rules"
// @Success     200 {array}  models.RecurringExpense "Recurring expenses by next due date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses [get]
func (h *RecurringExpenseHandler) ListRecurringExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	activeOnly := c.Query("active") == "true"
	expenses, err := h.recurringExpenseService.ListRecurringExpenses(userID, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_expenses": expenses})
}

// GetRecurringExpense handles retrieving a recurring expense
// @Summary     Get recurring expense by ID
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring expense ID"
// @Success     200 {object} models.RecurringExpense "Recurring expense"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id} [get]
func (h *RecurringExpenseHandler) GetRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.recurringExpenseService.GetRecurringExpense(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_expense": expense})
}

// UpdateRecurringExpense handles editing a recurring expense
// @Summary     Update recurring expense
// @Description Replace a rule's fields. The next due date restarts at the new start date.
// @Tags        recurring-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Recurring expense ID"
// @Param       request body RecurringExpenseRequest true "Recurring expense details"
// @Success     200 {object} models.RecurringExpense "Updated recurring expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id} [put]
func (h *RecurringExpenseHandler) UpdateRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.recurringExpenseService.UpdateRecurringExpense(userID, expenseID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_RECURRING_EXPENSE", "recurring_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": expense.Amount, "frequency": expense.Frequency, "start_date": expense.StartDate})

	c.JSON(http.StatusOK, gin.H{"recurring_expense": expense})
}

// StopRecurringExpense handles ending a recurring expense
// @Summary     Stop recurring expense
// @Description Deactivate a rule and set its end date to today.
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  string true  "Recurring expense ID"
// @Param       today query string false "Override today's date (YYYY-MM-DD)"
// @Success     200 {object} models.RecurringExpense "Stopped recurring expense"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id}/stop [post]
func (h *RecurringExpenseHandler) StopRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	today, err := parseToday(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.recurringExpenseService.StopRecurringExpense(userID, expenseID, today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "STOP_RECURRING_EXPENSE", "recurring_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"end_date": expense.EndDate})

	c.JSON(http.StatusOK, gin.H{"recurring_expense": expense})
}

// SkipRecurringExpense handles skipping the current occurrence
// @Summary     Skip recurring expense
// @Description Move the next due date forward one period without recording a payment.
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring expense ID"
// @Success     200 {object} models.RecurringExpense "Recurring expense"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     409 {object} ErrorResponse "Recurring expense is inactive"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id}/skip [post]
func (h *RecurringExpenseHandler) SkipRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.recurringExpenseService.SkipRecurringExpense(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SKIP_RECURRING_EXPENSE", "recurring_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"next_due_date": expense.NextDueDate})

	c.JSON(http.StatusOK, gin.H{"recurring_expense": expense})
}

// MarkRecurringExpensePaid handles paying the current occurrence
// @Summary     Pay recurring expense
// @Description Record the current occurrence as an expense transaction and advance the next due date.
// @Tags        recurring-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true  "Recurring expense ID"
// @Param       request body MarkPaidRequest false "Amount and date overrides"
// @Success     201 {object} models.Transaction "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     409 {object} ErrorResponse "Recurring expense is inactive"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id}/pay [post]
func (h *RecurringExpenseHandler) MarkRecurringExpensePaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, bindError(err))
		return
	}
	date, err := parseOptionalDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, payment, err := h.recurringExpenseService.MarkRecurringExpensePaid(userID, expenseID, req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PAY_RECURRING_EXPENSE", "recurring_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"transaction_id": payment.ID, "amount": payment.Amount, "date": payment.Date})

	c.JSON(http.StatusCreated, gin.H{"recurring_expense": expense, "transaction": payment})
}

// DeleteRecurringExpense handles deleting a recurring expense
// @Summary     Delete recurring expense
// @Description Delete a rule. Payments already recorded are kept without the reference.
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring expense ID"
// @Success     200 {object} map[string]string "Recurring expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Recurring expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /recurring-expenses/{id} [delete]
func (h *RecurringExpenseHandler) DeleteRecurringExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringExpenseService.DeleteRecurringExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_RECURRING_EXPENSE", "recurring_expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Recurring expense deleted successfully"})
}
