// Package availability answers whether equipment is free for a
// candidate date range.
package availability

import (
	"context"
	"time"

	"equiploan/model"
)

// Ranges lists the committed date ranges of one equipment unit.
type Ranges interface {
	ListOpenRequestsByEquipment(ctx context.Context, equipmentID int64) ([]model.LoanRequest, error)
	ListOpenLoansByEquipment(ctx context.Context, equipmentID int64) ([]model.Loan, error)
}

// Source is Ranges plus equipment lookup, for checks outside a transaction.
type Source interface {
	Ranges
	GetEquipment(ctx context.Context, id int64) (*model.Equipment, error)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Half-open comparison: sharing a boundary date is a same-day handoff,
// not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Free reports whether eq can take [start, end). A LOANED unit blocks
// everything; any open loan blocks everything (single physical unit);
// a PENDING or APPROVED request blocks only overlapping ranges.
// skipRequestID excludes the request under review from its own check.
func Free(ctx context.Context, src Ranges, eq *model.Equipment, start, end time.Time, skipRequestID int64) (bool, error) {
	if eq.Status == model.EquipmentLoaned {
		return false, nil
	}
	loans, err := src.ListOpenLoansByEquipment(ctx, eq.ID)
	if err != nil {
		return false, err
	}
	if len(loans) > 0 {
		return false, nil
	}
	reqs, err := src.ListOpenRequestsByEquipment(ctx, eq.ID)
	if err != nil {
		return false, err
	}
	for _, r := range reqs {
		if r.ID == skipRequestID {
			continue
		}
		if Overlaps(r.StartDate, r.EndDate, start, end) {
			return false, nil
		}
	}
	return true, nil
}

type Checker struct {
	src Source
}

func NewChecker(src Source) *Checker { return &Checker{src: src} }

func (c *Checker) IsAvailable(ctx context.Context, equipmentID int64, start, end time.Time) (bool, error) {
	eq, err := c.src.GetEquipment(ctx, equipmentID)
	if err != nil {
		return false, err
	}
	return Free(ctx, c.src, eq, start, end, 0)
}
