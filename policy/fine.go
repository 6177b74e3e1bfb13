package policy

import (
	"time"

	"equiploan/model"
)

// FinePolicy computes the penalty in integer cents for an overdue loan.
// A zero amount means "nothing to charge yet"; the overdue sweep creates
// no fine for it, so a grace period delays the fine without delaying the
// OVERDUE status mark.
type FinePolicy interface {
	AmountCents(loan model.Loan, now time.Time) int64
}

// DailyRate charges CentsPerDay for every whole day past the due date,
// after GraceDays have elapsed. The first chargeable day counts in full.
type DailyRate struct {
	CentsPerDay int64
	GraceDays   int
}

func (p DailyRate) AmountCents(loan model.Loan, now time.Time) int64 {
	if p.CentsPerDay <= 0 || !now.After(loan.DueDate) {
		return 0
	}
	daysLate := int(now.Sub(loan.DueDate).Hours() / 24)
	if daysLate < 1 {
		daysLate = 1
	}
	chargeable := daysLate - p.GraceDays
	if chargeable <= 0 {
		return 0
	}
	return int64(chargeable) * p.CentsPerDay
}
