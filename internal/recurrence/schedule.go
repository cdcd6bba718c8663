// Package recurrence decides in which calendar months a recurring fixed cost or
// income fires, and renders those occurrences next to stored transactions.
//
// Everything here is a pure function of its inputs. Callers pass "today" in
// explicitly where it matters.
package recurrence

import (
	"errors"
	"fmt"
	"time"
)

// Period is the cadence at which an obligation repeats.
type Period string

const (
	Monthly    Period = "monthly"
	Bimonthly  Period = "bimonthly"
	Quarterly  Period = "quarterly"
	Semiannual Period = "semiannual"
	Annual     Period = "annual"
	OneOff     Period = "one-off"
)

// DefaultDueDay is used when an obligation has no due day of its own.
const DefaultDueDay = 1

var (
	ErrInvalidPeriod     = errors.New("invalid recurrence period")
	ErrInvalidMonth      = errors.New("anchor month must be between 1 and 12")
	ErrInvalidYear       = errors.New("anchor year is required")
	ErrInvalidDueDay     = errors.New("due day must be between 1 and 31")
	ErrMissingOneOffDate = errors.New("one-off obligations require a date")
	ErrUnexpectedOneOff  = errors.New("only one-off obligations carry a date")
)

// months maps every repeating period to its length in months.
var months = map[Period]int{
	Monthly:    1,
	Bimonthly:  2,
	Quarterly:  3,
	Semiannual: 6,
	Annual:     12,
}

// Months returns the period length in months, or 0 for one-off and unknown periods.
func (p Period) Months() int {
	return months[p]
}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	return p == OneOff || months[p] > 0
}

// ParsePeriod validates a period coming from user input.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

// Schedule is the timing half of a recurring obligation. Repeating periods are
// anchored at AnchorMonth/AnchorYear; one-off obligations use OneOffDate only.
type Schedule struct {
	Period      Period
	AnchorMonth int
	AnchorYear  int
	DueDay      int // 0 means unset
	OneOffDate  *time.Time
}

// Validate enforces that exactly the fields meaningful for the period are set.
func (s Schedule) Validate() error {
	if !s.Period.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, s.Period)
	}
	if s.DueDay != 0 && (s.DueDay < 1 || s.DueDay > 31) {
		return ErrInvalidDueDay
	}
	if s.Period == OneOff {
		if s.OneOffDate == nil || s.OneOffDate.IsZero() {
			return ErrMissingOneOffDate
		}
		return nil
	}
	if s.OneOffDate != nil {
		return ErrUnexpectedOneOff
	}
	if s.AnchorMonth < 1 || s.AnchorMonth > 12 {
		return ErrInvalidMonth
	}
	if s.AnchorYear <= 0 {
		return ErrInvalidYear
	}
	return nil
}

// ShouldInclude reports whether the schedule fires in the given month.
//
// One-off schedules fire only in the month of their date. Repeating schedules
// never fire before their anchor and afterwards fire every Period.Months()
// months counted from the anchor, across year boundaries.
func ShouldInclude(s Schedule, month, year int) bool {
	if s.Period == OneOff {
		if s.OneOffDate == nil {
			return false
		}
		return int(s.OneOffDate.Month()) == month && s.OneOffDate.Year() == year
	}

	step := s.Period.Months()
	if step == 0 {
		return false
	}
	elapsed := (year-s.AnchorYear)*12 + (month - s.AnchorMonth)
	if elapsed < 0 {
		return false
	}
	return elapsed%step == 0
}

// EffectiveDueDay is the day of month an occurrence falls on: the one-off date's
// day, the configured due day, or DefaultDueDay.
func (s Schedule) EffectiveDueDay() int {
	if s.Period == OneOff && s.OneOffDate != nil {
		return s.OneOffDate.Day()
	}
	if s.DueDay > 0 {
		return s.DueDay
	}
	return DefaultDueDay
}

// WithDefaultDueDay fills in day for repeating schedules that have no due day
// of their own. Out-of-range days and one-off schedules leave s unchanged.
func (s Schedule) WithDefaultDueDay(day int) Schedule {
	if s.Period != OneOff && s.DueDay == 0 && day >= 1 && day <= 31 {
		s.DueDay = day
	}
	return s
}

// OccurrenceDate places the due day inside the given month, clamping days that
// the month does not have (31 in April becomes 30).
func (s Schedule) OccurrenceDate(month, year int) time.Time {
	day := s.EffectiveDueDay()
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
