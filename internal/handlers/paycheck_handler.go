package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/pagination"
	"github.com/wzsamuels/budget-project/internal/recurrence"
	"github.com/wzsamuels/budget-project/internal/services"
)

// PaycheckHandler handles paycheck-related requests.
type PaycheckHandler struct {
	paycheckService services.PaycheckServicer
	auditService    services.AuditServicer
}

// NewPaycheckHandler creates a new PaycheckHandler.
func NewPaycheckHandler(paycheckService services.PaycheckServicer, auditService services.AuditServicer) *PaycheckHandler {
	return &PaycheckHandler{paycheckService: paycheckService, auditService: auditService}
}

// DeductionRequest is one deduction line of a paycheck request.
type DeductionRequest struct {
	Name     string                   `json:"name" binding:"required,max=100"`
	Amount   money.Money              `json:"amount" binding:"gte=0"`
	Category models.DeductionCategory `json:"category" binding:"required,deduction_category"`
	IsPreTax bool                     `json:"is_pre_tax"`
}

// PaycheckRequest represents the request payload for creating or replacing a
// paycheck. Net pay is derived and cannot be sent.
type PaycheckRequest struct {
	EmployerName string             `json:"employer_name" binding:"required,max=255"`
	PayDate      string             `json:"pay_date" binding:"required,iso_date"`
	GrossAmount  money.Money        `json:"gross_amount" binding:"gte=0"`
	Deductions   []DeductionRequest `json:"deductions" binding:"dive"`
}

// ProjectPaycheckRequest represents the request payload for projecting a paycheck.
type ProjectPaycheckRequest struct {
	Frequency recurrence.Frequency `json:"frequency" binding:"required,frequency" example:"BIWEEKLY"`
}

// PaycheckListQuery holds the list filters.
type PaycheckListQuery struct {
	pagination.PageRequest
	Year int `form:"year" binding:"omitempty,gte=1900,lte=9999"`
}

func (r PaycheckRequest) toInput() (services.PaycheckInput, error) {
	payDate, err := parseDate("pay_date", r.PayDate)
	if err != nil {
		return services.PaycheckInput{}, err
	}
	in := services.PaycheckInput{
		EmployerName: r.EmployerName,
		PayDate:      payDate,
		GrossAmount:  r.GrossAmount,
		Deductions:   make([]services.DeductionInput, 0, len(r.Deductions)),
	}
	for _, d := range r.Deductions {
		in.Deductions = append(in.Deductions, services.DeductionInput{
			Name:     d.Name,
			Amount:   d.Amount,
			Category: d.Category,
			IsPreTax: d.IsPreTax,
		})
	}
	return in, nil
}

// CreatePaycheck handles recording a paycheck
// @Summary     Create a paycheck
// @Description Record a paycheck with its deductions. Net pay is gross minus all deductions.
// @Tags        paychecks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PaycheckRequest true "Paycheck details"
// @Success     201 {object} models.Paycheck "Paycheck created"
// @Failure     400 {object} ErrorResponse "Invalid input or deductions exceed gross"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks [post]
func (h *PaycheckHandler) CreatePaycheck(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaycheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheck, err := h.paycheckService.CreatePaycheck(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PAYCHECK", "paycheck", paycheck.ID, c.ClientIP(),
		map[string]interface{}{"pay_date": paycheck.PayDate, "gross_amount": paycheck.GrossAmount, "net_amount": paycheck.NetAmount})

	c.JSON(http.StatusCreated, gin.H{"paycheck": paycheck})
}

// ListPaychecks handles listing the user's paychecks
// @Summary     List paychecks
// @Description Get a paginated list of paychecks, newest first
// @Tags        paychecks
// @Produce     json
// @Security    BearerAuth
// @Param       year      query int false "Only paychecks paid in this year"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Paycheck] "Paginated paychecks"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks [get]
func (h *PaycheckHandler) ListPaychecks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q PaycheckListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.paycheckService.ListPaychecks(userID, q.Year, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPaycheck handles retrieving a single paycheck
// @Summary     Get paycheck by ID
// @Tags        paychecks
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Paycheck ID"
// @Success     200 {object} models.Paycheck "Paycheck with deductions"
// @Failure     400 {object} ErrorResponse "Invalid paycheck ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Paycheck not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks/{id} [get]
func (h *PaycheckHandler) GetPaycheck(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheckID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheck, err := h.paycheckService.GetPaycheck(userID, paycheckID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paycheck": paycheck})
}

// UpdatePaycheck handles replacing a paycheck
// @Summary     Update paycheck
// @Description Replace a paycheck's fields and deductions. Editing a projected paycheck turns it into an actual one.
// @Tags        paychecks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Paycheck ID"
// @Param       request body PaycheckRequest true "Paycheck details"
// @Success     200 {object} models.Paycheck "Updated paycheck"
// @Failure     400 {object} ErrorResponse "Invalid input or deductions exceed gross"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Paycheck not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks/{id} [put]
func (h *PaycheckHandler) UpdatePaycheck(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheckID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaycheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheck, err := h.paycheckService.UpdatePaycheck(userID, paycheckID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PAYCHECK", "paycheck", paycheck.ID, c.ClientIP(),
		map[string]interface{}{"pay_date": paycheck.PayDate, "gross_amount": paycheck.GrossAmount, "net_amount": paycheck.NetAmount})

	c.JSON(http.StatusOK, gin.H{"paycheck": paycheck})
}

// DeletePaycheck handles deleting a paycheck
// @Summary     Delete paycheck
// @Tags        paychecks
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Paycheck ID"
// @Success     200 {object} map[string]string "Paycheck deleted"
// @Failure     400 {object} ErrorResponse "Invalid paycheck ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Paycheck not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks/{id} [delete]
func (h *PaycheckHandler) DeletePaycheck(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheckID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.paycheckService.DeletePaycheck(userID, paycheckID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PAYCHECK", "paycheck", paycheckID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Paycheck deleted successfully"})
}

// ProjectPaycheck handles cloning a paycheck onto the rest of the year's pay dates
// @Summary     Project paycheck
// @Description Clone a paycheck onto every later pay date through December 31 of the current year. Earlier projections from the same paycheck are replaced.
// @Tags        paychecks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path  string                 true  "Source paycheck ID"
// @Param       today   query string                 false "Override today's date (YYYY-MM-DD)"
// @Param       request body  ProjectPaycheckRequest true  "Pay frequency"
// @Success     201 {array}  models.Paycheck "Projected paychecks"
// @Failure     400 {object} ErrorResponse "Invalid input or frequency"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Paycheck not found"
// @Failure     409 {object} ErrorResponse "Projection already running"
// @Failure     422 {object} ErrorResponse "No pay dates remain this year"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /paychecks/{id}/project [post]
func (h *PaycheckHandler) ProjectPaycheck(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	paycheckID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProjectPaycheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	today, err := parseToday(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	projected, err := h.paycheckService.ProjectPaycheck(c.Request.Context(), userID, paycheckID, req.Frequency, today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PROJECT_PAYCHECK", "paycheck", paycheckID, c.ClientIP(),
		map[string]interface{}{"frequency": req.Frequency, "count": len(projected)})

	c.JSON(http.StatusCreated, gin.H{"paychecks": projected, "count": len(projected)})
}
