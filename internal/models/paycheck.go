package models

import (
	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/money"
)

// Paycheck is one pay event. Projected paychecks are clones of a source
// paycheck placed on future pay dates; they are estimates, not received pay.
type Paycheck struct {
	Base
	UserID          string        `gorm:"not null;index" json:"user_id"`
	EmployerName    string        `gorm:"not null" json:"employer_name"`
	PayDate         calendar.Date `gorm:"type:date;not null;index" json:"pay_date"`
	GrossAmount     money.Money   `gorm:"type:bigint;not null" json:"gross_amount"`
	NetAmount       money.Money   `gorm:"type:bigint;not null" json:"net_amount"`
	Projected       bool          `gorm:"not null" json:"projected"`
	ProjectedFromID *string       `gorm:"type:uuid;index" json:"projected_from_id,omitempty"`

	// Relationships
	Deductions []Deduction `gorm:"foreignKey:PaycheckID;constraint:OnDelete:CASCADE" json:"deductions"`
}

// Deduction is a single payroll line item owned by a paycheck.
type Deduction struct {
	Base
	PaycheckID string            `gorm:"type:uuid;not null;index" json:"paycheck_id"`
	Position   int               `gorm:"not null" json:"-"`
	Name       string            `gorm:"not null" json:"name"`
	Amount     money.Money       `gorm:"type:bigint;not null" json:"amount"`
	Category   DeductionCategory `gorm:"not null" json:"category"`
	IsPreTax   bool              `gorm:"not null" json:"is_pre_tax"`
}

// TotalDeductions sums every deduction amount.
func (p *Paycheck) TotalDeductions() money.Money {
	var total money.Money
	for _, d := range p.Deductions {
		total += d.Amount
	}
	return total
}

// TaxTotal sums TAX deductions.
func (p *Paycheck) TaxTotal() money.Money {
	var total money.Money
	for _, d := range p.Deductions {
		if d.Category.IsTax() {
			total += d.Amount
		}
	}
	return total
}

// PreTaxSavingsTotal sums RETIREMENT and HSA deductions.
func (p *Paycheck) PreTaxSavingsTotal() money.Money {
	var total money.Money
	for _, d := range p.Deductions {
		if d.Category.IsPreTaxSavings() {
			total += d.Amount
		}
	}
	return total
}
