package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/paystub"
)

// maxPaystubBytes bounds the text accepted for extraction.
const maxPaystubBytes = 1 << 20

// PaystubHandler turns extracted paystub text into a draft paycheck.
type PaystubHandler struct {
	extractor *paystub.Extractor
}

// NewPaystubHandler creates a new PaystubHandler.
func NewPaystubHandler(extractor *paystub.Extractor) *PaystubHandler {
	if extractor == nil {
		extractor = paystub.NewExtractor(paystub.DefaultLabels())
	}
	return &PaystubHandler{extractor: extractor}
}

// ExtractPaystubRequest is the JSON form of the extraction body.
type ExtractPaystubRequest struct {
	Text string `json:"text"`
}

// ExtractPaystub handles paystub text extraction
// @Summary     Extract paystub
// @Description Find the pay date, gross pay and deductions in paystub text. Fields that cannot be found are null. The body is either plain text or {"text": "..."}.
// @Tags        paystubs
// @Accept      plain
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExtractPaystubRequest true "Paystub text"
// @Success     200 {object} paystub.Result "Draft paycheck"
// @Failure     400 {object} ErrorResponse "Empty paystub"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     413 {object} ErrorResponse "Paystub text too large"
// @Router      /paystubs/extract [post]
func (h *PaystubHandler) ExtractPaystub(c *gin.Context) {
	text, err := readPaystubText(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"paystub": h.extractor.Extract(text)})
}

func readPaystubText(c *gin.Context) (string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPaystubBytes)

	var text string
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req ExtractPaystubRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if tooLarge(err) {
				return "", apperrors.ErrPaystubTooLarge
			}
			return "", apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		text = req.Text
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			if tooLarge(err) {
				return "", apperrors.ErrPaystubTooLarge
			}
			return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "could not read request body")
		}
		text = string(body)
	}

	if strings.TrimSpace(text) == "" {
		return "", apperrors.ErrEmptyPaystub
	}
	return text, nil
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
