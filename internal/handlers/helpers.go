package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/wzsamuels/budget-project/internal/calendar"
	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/logger"
	"github.com/wzsamuels/budget-project/internal/middleware"
	"github.com/wzsamuels/budget-project/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter.
//
//nolint:unparam // param is generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD request value.
func parseDate(field, value string) (calendar.Date, error) {
	d, err := calendar.Parse(value)
	if err != nil {
		return calendar.Date{}, apperrors.WithMessage(apperrors.ErrInvalidDate, "invalid "+field+", use YYYY-MM-DD")
	}
	return d, nil
}

// parseOptionalDate is parseDate for fields that may be omitted.
func parseOptionalDate(field string, value *string) (*calendar.Date, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseToday reads the optional "today" query parameter, defaulting to the
// server's calendar date.
func parseToday(c *gin.Context) (calendar.Date, error) {
	v := c.Query("today")
	if v == "" {
		return calendar.Today(), nil
	}
	return parseDate("today", v)
}

// bindError maps a binding failure to the most specific error code. Date and
// frequency tags have their own codes; everything else is INVALID_INPUT.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "iso_date":
				return apperrors.WithMessage(apperrors.ErrInvalidDate, "invalid "+fe.Field()+", use YYYY-MM-DD")
			case "frequency", "rule_frequency":
				return apperrors.WithMessage(apperrors.ErrInvalidFrequency, "unsupported "+fe.Field())
			}
		}
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
