// services/refill.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nareshagarwalTech/shree-shyam-pharmacy/utils"
)

// Status is the urgency bucket of a refill date relative to today.
type Status string

const (
	StatusOverdue Status = "overdue"
	StatusUrgent  Status = "urgent"
	StatusSoon    Status = "soon"
	StatusOK      Status = "ok"
)

// Refill dates this many days out (or closer) fall in the matching bucket.
// Day 3 is urgent, day 7 is soon: boundaries belong to the lower bucket.
const (
	UrgentWithinDays = 3
	SoonWithinDays   = 7
)

// DefaultBufferDays pulls the refill date forward of the day the supply
// actually runs out, giving the customer restocking lead time.
const DefaultBufferDays = 3

var ErrInvalidDosage = errors.New("daily dosage must be at least 1")

// ComputeRefillDate derives the refill due date from the supply parameters:
// start + (quantity/dailyDosage - bufferDays) days. The offset may be
// negative for very small quantities; that is not an error.
func ComputeRefillDate(start time.Time, quantity, dailyDosage, bufferDays int) (time.Time, error) {
	if dailyDosage < 1 {
		return time.Time{}, ErrInvalidDosage
	}
	daysSupply := quantity / dailyDosage
	return utils.BeginningOfDay(start).AddDate(0, 0, daysSupply-bufferDays), nil
}

// DaysUntil returns whole calendar days from today to the refill date,
// negative once the date has passed.
func DaysUntil(refillDate, today time.Time) int {
	return utils.DaysBetween(today, refillDate)
}

// ClassifyStatus buckets a refill date against today. This is the single
// implementation of the thresholds: the importer preview, the due-reminders
// read path, the dashboard and the daily summary all go through it.
func ClassifyStatus(refillDate, today time.Time) Status {
	return ClassifyDays(DaysUntil(refillDate, today))
}

func ClassifyDays(daysUntil int) Status {
	switch {
	case daysUntil < 0:
		return StatusOverdue
	case daysUntil <= UrgentWithinDays:
		return StatusUrgent
	case daysUntil <= SoonWithinDays:
		return StatusSoon
	default:
		return StatusOK
	}
}

// FormatRelativeDays renders daysUntil the way the dashboard and message
// templates show it.
func FormatRelativeDays(daysUntil int) string {
	if daysUntil < 0 {
		overdue := -daysUntil
		if overdue == 1 {
			return "1 day overdue"
		}
		return fmt.Sprintf("%d days overdue", overdue)
	}
	switch daysUntil {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("In %d days", daysUntil)
	}
}
