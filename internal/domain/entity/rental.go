package entity

import (
	"errors"
	"time"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
)

// Rental is a confirmed booking. Its ID equals the apartment it was
// created from, which is what makes cancellation able to flip the source
// apartment back to available.
type Rental struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Location  string       `json:"location"`
	Price     string       `json:"price"`
	Status    RentalStatus `json:"status"`
	Image     string       `json:"image"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Reference string       `json:"reference"`
}

var (
	ErrRentalNotFound    = errors.New("rental not found")
	ErrInvalidAdjustment = errors.New("invalid renewal amount or unit")
	ErrEndBeforeStart    = errors.New("end date cannot precede start date")
)

type AdjustUnit string

const (
	UnitDays   AdjustUnit = "days"
	UnitWeeks  AdjustUnit = "weeks"
	UnitMonths AdjustUnit = "months"
	UnitYears  AdjustUnit = "years"
)

type AdjustDirection string

const (
	DirectionAdd      AdjustDirection = "add"
	DirectionSubtract AdjustDirection = "subtract"
)

// ShiftDate applies calendar-correct date arithmetic. Month and year
// shifts clamp to the last day of the target month instead of rolling
// over, so Jan 31 plus one month lands on Feb 29 in a leap year.
func ShiftDate(t time.Time, amount int, unit AdjustUnit, direction AdjustDirection) (time.Time, error) {
	if amount <= 0 {
		return time.Time{}, ErrInvalidAdjustment
	}
	sign := 1
	switch direction {
	case DirectionAdd:
	case DirectionSubtract:
		sign = -1
	default:
		return time.Time{}, ErrInvalidAdjustment
	}

	switch unit {
	case UnitDays:
		return t.AddDate(0, 0, sign*amount), nil
	case UnitWeeks:
		return t.AddDate(0, 0, sign*amount*7), nil
	case UnitMonths:
		return addMonthsClamped(t, sign*amount), nil
	case UnitYears:
		return addMonthsClamped(t, sign*amount*12), nil
	default:
		return time.Time{}, ErrInvalidAdjustment
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysInMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
