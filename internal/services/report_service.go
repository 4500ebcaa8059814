package services

import (
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/wzsamuels/budget-project/internal/calendar"
	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/export"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/projection"
)

// reportService assembles dashboard reports from stored records.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// GetReport builds the dashboard for the year containing today.
func (s *reportService) GetReport(userID string, today calendar.Date) (*projection.Report, error) {
	start := time.Now()
	jan1, dec31 := today.StartOfYear(), today.EndOfYear()

	paychecks, err := s.loadPaychecks(userID, jan1, dec31, today)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rules []models.RecurringExpense
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	err = s.db.Where("user_id = ? AND date BETWEEN ? AND ?", userID, jan1, dec31).Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := projection.BuildReport(userID, paychecks, rules, transactions, today)
	logDuration("build report", start, "user_id", userID, "paychecks", len(paychecks), "rules", len(rules))
	return &report, nil
}

// loadPaychecks returns the year's paychecks plus the most recent ones before
// it, so the recent list is full in early January.
func (s *reportService) loadPaychecks(userID string, jan1, dec31, today calendar.Date) ([]models.Paycheck, error) {
	var inYear []models.Paycheck
	err := s.db.Preload("Deductions", orderedDeductions).
		Where("user_id = ? AND pay_date BETWEEN ? AND ?", userID, jan1, dec31).
		Find(&inYear).Error
	if err != nil {
		return nil, err
	}

	var earlier []models.Paycheck
	err = s.db.Where("user_id = ? AND pay_date < ?", userID, jan1).
		Order("pay_date DESC").
		Limit(projection.RecentPaycheckLimit).
		Find(&earlier).Error
	if err != nil {
		return nil, err
	}
	return append(inYear, earlier...), nil
}

// ExportReport writes the dashboard for today's year as an xlsx workbook.
func (s *reportService) ExportReport(userID string, today calendar.Date, w io.Writer) error {
	report, err := s.GetReport(userID, today)
	if err != nil {
		return err
	}
	if err := export.WriteAnnualReport(w, *report); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
