// Package policy holds the pluggable due-date and fine calculations.
// Everything here is pure: no clocks, no stores, deterministic.
package policy

import (
	"time"

	"equiploan/model"
)

const DefaultLoanDays = 7

// DueDatePolicy computes the due date for a loan starting at start.
type DueDatePolicy interface {
	DueDate(start time.Time, eq model.Equipment) time.Time
}

// FixedDays adds a fixed number of calendar days, UTC, no time-of-day
// component, no weekend or holiday adjustment.
type FixedDays struct {
	Days int
}

func NewFixedDays(days int) FixedDays {
	if days <= 0 {
		days = DefaultLoanDays
	}
	return FixedDays{Days: days}
}

func (p FixedDays) DueDate(start time.Time, _ model.Equipment) time.Time {
	return atMidnightUTC(start).AddDate(0, 0, p.Days)
}

// CategoryBased picks the day count from the equipment category.
// An unconfigured category silently falls back to Default; that is
// documented behavior, not an error.
type CategoryBased struct {
	Rules   map[string]int
	Default int
}

func NewCategoryBased(rules map[string]int, def int) CategoryBased {
	if def <= 0 {
		def = DefaultLoanDays
	}
	return CategoryBased{Rules: rules, Default: def}
}

func (p CategoryBased) DueDate(start time.Time, eq model.Equipment) time.Time {
	days, ok := p.Rules[eq.Category]
	if !ok || days <= 0 {
		days = p.Default
	}
	return atMidnightUTC(start).AddDate(0, 0, days)
}

func atMidnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
