package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wzsamuels/budget-project/internal/calendar"
	apperrors "github.com/wzsamuels/budget-project/internal/errors"
	"github.com/wzsamuels/budget-project/internal/lock"
	"github.com/wzsamuels/budget-project/internal/logger"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/money"
	"github.com/wzsamuels/budget-project/internal/pagination"
	"github.com/wzsamuels/budget-project/internal/projection"
	"github.com/wzsamuels/budget-project/internal/recurrence"
)

// paycheckService handles paycheck-related business logic.
type paycheckService struct {
	db      *gorm.DB
	locker  lock.Locker
	lockTTL time.Duration
}

// NewPaycheckService creates a new PaycheckServicer. Projections of the same
// paycheck are serialized through locker.
func NewPaycheckService(db *gorm.DB, locker lock.Locker, lockTTL time.Duration) PaycheckServicer {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &paycheckService{db: db, locker: locker, lockTTL: lockTTL}
}

func orderedDeductions(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// validatePaycheck checks the input and returns the derived net pay.
func validatePaycheck(in PaycheckInput) (money.Money, error) {
	if strings.TrimSpace(in.EmployerName) == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "employer name is required")
	}
	if in.PayDate.IsZero() {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidDate, "pay date is required")
	}
	if in.GrossAmount < 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "gross amount cannot be negative")
	}

	var total money.Money
	for _, d := range in.Deductions {
		if strings.TrimSpace(d.Name) == "" {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "deduction name is required")
		}
		if d.Amount < 0 {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "deduction amounts cannot be negative")
		}
		if !d.Category.Valid() {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown deduction category "+string(d.Category))
		}
		total += d.Amount
	}
	if total > in.GrossAmount {
		return 0, apperrors.ErrDeductionsExceedGross
	}
	return in.GrossAmount - total, nil
}

func buildDeductions(in []DeductionInput) []models.Deduction {
	out := make([]models.Deduction, 0, len(in))
	for i, d := range in {
		out = append(out, models.Deduction{
			Position: i,
			Name:     strings.TrimSpace(d.Name),
			Amount:   d.Amount,
			Category: d.Category,
			IsPreTax: d.IsPreTax,
		})
	}
	return out
}

// CreatePaycheck stores a paycheck and its deductions.
func (s *paycheckService) CreatePaycheck(userID string, in PaycheckInput) (*models.Paycheck, error) {
	net, err := validatePaycheck(in)
	if err != nil {
		return nil, err
	}

	paycheck := &models.Paycheck{
		UserID:       userID,
		EmployerName: strings.TrimSpace(in.EmployerName),
		PayDate:      in.PayDate,
		GrossAmount:  in.GrossAmount,
		NetAmount:    net,
		Deductions:   buildDeductions(in.Deductions),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(paycheck).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return paycheck, nil
}

// GetPaycheck retrieves a paycheck with its deductions.
func (s *paycheckService) GetPaycheck(userID, paycheckID string) (*models.Paycheck, error) {
	return s.findPaycheck(s.db, userID, paycheckID)
}

func (s *paycheckService) findPaycheck(db *gorm.DB, userID, paycheckID string) (*models.Paycheck, error) {
	var paycheck models.Paycheck
	err := db.Preload("Deductions", orderedDeductions).
		Where("id = ? AND user_id = ?", paycheckID, userID).
		First(&paycheck).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaycheckNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &paycheck, nil
}

// ListPaychecks returns a page of paychecks, newest first. A zero year lists
// every year.
func (s *paycheckService) ListPaychecks(userID string, year int, page pagination.PageRequest) (*pagination.PageResponse[models.Paycheck], error) {
	page.Defaults()

	base := s.db.Model(&models.Paycheck{}).Where("user_id = ?", userID)
	if year > 0 {
		jan1 := calendar.MustNew(year, time.January, 1)
		base = base.Where("pay_date BETWEEN ? AND ?", jan1, jan1.EndOfYear())
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var paychecks []models.Paycheck
	err := base.Preload("Deductions", orderedDeductions).
		Order("pay_date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&paychecks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(paychecks, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdatePaycheck replaces a paycheck's fields and deductions. An edited
// projection becomes an ordinary paycheck.
func (s *paycheckService) UpdatePaycheck(userID, paycheckID string, in PaycheckInput) (*models.Paycheck, error) {
	net, err := validatePaycheck(in)
	if err != nil {
		return nil, err
	}

	var updated *models.Paycheck
	err = s.db.Transaction(func(tx *gorm.DB) error {
		paycheck, err := s.findPaycheck(tx, userID, paycheckID)
		if err != nil {
			return err
		}

		if err := tx.Unscoped().Where("paycheck_id = ?", paycheck.ID).Delete(&models.Deduction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		err = tx.Model(&models.Paycheck{}).Where("id = ?", paycheck.ID).
			Updates(map[string]interface{}{
				"employer_name":     strings.TrimSpace(in.EmployerName),
				"pay_date":          in.PayDate,
				"gross_amount":      in.GrossAmount,
				"net_amount":        net,
				"projected":         false,
				"projected_from_id": nil,
			}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		deductions := buildDeductions(in.Deductions)
		for i := range deductions {
			deductions[i].PaycheckID = paycheck.ID
		}
		if len(deductions) > 0 {
			if err := tx.Create(&deductions).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		updated, err = s.findPaycheck(tx, userID, paycheckID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePaycheck removes a paycheck, its deductions and any projections
// still cloned from it. Projections that were edited into actual paychecks
// are kept.
func (s *paycheckService) DeletePaycheck(userID, paycheckID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		paycheck, err := s.findPaycheck(tx, userID, paycheckID)
		if err != nil {
			return err
		}
		if err := tx.Where("paycheck_id = ?", paycheck.ID).Delete(&models.Deduction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := deleteProjections(tx, userID, paycheck.ID); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(paycheck).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ProjectPaycheck clones a paycheck onto every later pay date through the
// end of the current year. Earlier projections from the same paycheck are
// replaced, and the whole batch is written or none of it is.
func (s *paycheckService) ProjectPaycheck(
	ctx context.Context,
	userID string,
	paycheckID string,
	frequency recurrence.Frequency,
	today calendar.Date,
) ([]models.Paycheck, error) {
	if !frequency.Valid() {
		return nil, apperrors.ErrInvalidFrequency
	}

	held, err := s.locker.Obtain(ctx, "paycheck-projection:"+paycheckID, s.lockTTL)
	if errors.Is(err, lock.ErrNotObtained) {
		return nil, apperrors.ErrProjectionInProgress
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	defer func() {
		if err := held.Release(context.WithoutCancel(ctx)); err != nil {
			logger.Get().Warnw("failed to release projection lock", "error", err, "paycheck_id", paycheckID)
		}
	}()

	var clones []models.Paycheck
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		source, err := s.findPaycheck(tx, userID, paycheckID)
		if err != nil {
			return err
		}
		if source.Projected {
			return apperrors.ErrProjectedSourceInvalid
		}

		clones = projection.ProjectPaychecks(source, frequency, today.EndOfYear())
		if len(clones) == 0 {
			return apperrors.ErrNothingToProject
		}

		if err := deleteProjections(tx, userID, source.ID); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Create(&clones).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("projected paycheck",
		"user_id", userID,
		"paycheck_id", paycheckID,
		"frequency", frequency,
		"count", len(clones),
	)
	return clones, nil
}

// deleteProjections hard-deletes projections cloned from sourceID.
func deleteProjections(tx *gorm.DB, userID, sourceID string) error {
	stale := tx.Model(&models.Paycheck{}).Select("id").
		Where("user_id = ? AND projected = ? AND projected_from_id = ?", userID, true, sourceID)
	if err := tx.Unscoped().Where("paycheck_id IN (?)", stale).Delete(&models.Deduction{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().
		Where("user_id = ? AND projected = ? AND projected_from_id = ?", userID, true, sourceID).
		Delete(&models.Paycheck{}).Error
}
