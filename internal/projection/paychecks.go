package projection

import (
	"github.com/wzsamuels/budget-project/internal/calendar"
	"github.com/wzsamuels/budget-project/internal/models"
	"github.com/wzsamuels/budget-project/internal/recurrence"
)

// ProjectPaychecks clones source onto every pay date after its own through
// horizon. Clones carry the same amounts and deductions, are flagged
// projected and point back at source. Nothing is returned when the first
// step already passes the horizon.
func ProjectPaychecks(source *models.Paycheck, f recurrence.Frequency, horizon calendar.Date) []models.Paycheck {
	var out []models.Paycheck
	for d := range recurrence.OccurrencesUntil(source.PayDate, f, horizon) {
		out = append(out, clonePaycheck(source, d))
	}
	return out
}

func clonePaycheck(source *models.Paycheck, payDate calendar.Date) models.Paycheck {
	sourceID := source.ID
	p := models.Paycheck{
		UserID:          source.UserID,
		EmployerName:    source.EmployerName,
		PayDate:         payDate,
		GrossAmount:     source.GrossAmount,
		NetAmount:       source.NetAmount,
		Projected:       true,
		ProjectedFromID: &sourceID,
		Deductions:      make([]models.Deduction, 0, len(source.Deductions)),
	}
	for i, d := range source.Deductions {
		p.Deductions = append(p.Deductions, models.Deduction{
			Position: i,
			Name:     d.Name,
			Amount:   d.Amount,
			Category: d.Category,
			IsPreTax: d.IsPreTax,
		})
	}
	return p
}
