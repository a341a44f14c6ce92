// Package fines computes the late-payment penalty charged against a tenant's
// security deposit. It is the single source of truth for the escalation
// formula: both the live estimate shown on the payer dashboard and the
// authoritative deduction made while processing a payment go through
// Calculate, so the two can never drift apart.
package fines

import "time"

// BaseFine is the penalty for being exactly one day late. Each further day
// doubles it.
const BaseFine int64 = 100

// Result describes the penalty state for one (dueDate, lastPayment, today)
// triple.
type Result struct {
	// Fine is the amount owed, in whole currency units. Zero when the
	// tenant already paid for the cycle or the due date has not passed.
	Fine int64 `json:"fine"`
	// DaysLate counts whole days elapsed since the due date.
	DaysLate int `json:"days_late"`
	// CycleDay is a 1-indexed day counter where day 1 is the due date
	// itself. Zero when the cycle is already paid.
	CycleDay int `json:"day_of_cycle"`
}

// Calculate returns the fine owed given the property's due date, the
// tenant's last processed payment, and the current date. Pure and total:
// fixed inputs always produce the same result and no input fails.
//
// Time-of-day never matters; all three instants are truncated to midnight of
// their local calendar date before comparison. The due date itself is a
// grace day, so the first chargeable day is the day after it: one day late
// costs BaseFine, and every additional day doubles the amount, without cap.
func Calculate(dueDate, lastPaymentDate, today time.Time) Result {
	due := midnight(dueDate)
	lastPay := midnight(lastPaymentDate)
	now := midnight(today)

	// Paid on or after the due date: the cycle is settled.
	if !lastPay.Before(due) {
		return Result{}
	}

	// Due date not reached yet.
	if !now.After(due) {
		return Result{CycleDay: 1}
	}

	daysLate := int(now.Sub(due).Hours() / 24)
	if daysLate < 1 {
		return Result{CycleDay: 1}
	}

	return Result{
		Fine:     BaseFine << uint(daysLate-1),
		DaysLate: daysLate,
		CycleDay: daysLate + 1,
	}
}

// midnight collapses an instant to its calendar date. Pinning the result to
// UTC keeps day differences exact multiples of 24h regardless of DST or of
// which zone the instant was stored in.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
