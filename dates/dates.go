// Package dates provides the contract-date arithmetic shared by the STIR
// settlement calculators: IMM dates, month boundaries, and the business-day
// scans that pin last trading days.
package dates

import (
	"fmt"
	"time"

	"github.com/meenmo/stirfutures/calendar"
)

// maxMonthEndScan bounds the backward scan for a month's last business day.
// No real calendar has anywhere near 31 consecutive non-business days at a
// month end; exceeding the bound means the calendar is misconfigured.
const maxMonthEndScan = 31

// Date returns year/month/day at UTC midnight.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ThirdWednesday returns the third Wednesday of the given month, the IMM
// pin date for quarterly futures.
func ThirdWednesday(year, month int) time.Time {
	first := Date(year, month, 1)
	offset := (int(time.Wednesday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+14)
}

// AddMonths shifts a year/month pair by n months with year rollover.
// n may be negative or larger than twelve.
func AddMonths(year, month, n int) (int, int) {
	m := month + n
	y := year + (m-1)/12
	m = (m-1)%12 + 1
	if m <= 0 {
		m += 12
		y--
	}
	return y, m
}

// MonthStartEnd returns the first and last calendar day of the month.
func MonthStartEnd(year, month int) (time.Time, time.Time) {
	start := Date(year, month, 1)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// LastBusinessDayOfMonth scans backward from the month's last calendar day
// until cal reports a business day. It panics if the scan does not
// terminate within maxMonthEndScan days, which indicates a broken calendar
// rather than missing market data.
func LastBusinessDayOfMonth(year, month int, cal *calendar.Calendar) time.Time {
	_, end := MonthStartEnd(year, month)
	d := end
	for i := 0; i < maxMonthEndScan; i++ {
		if cal.IsBusinessDay(d) {
			return d
		}
		d = d.AddDate(0, 0, -1)
	}
	panic(fmt.Sprintf("dates: no business day within %d days of %s month end", maxMonthEndScan, end.Format("2006-01")))
}

// MidMonthJumpDay returns the mid-month SOFR spread jump day: the 15th,
// pushed to the 17th when the 15th is a Saturday and to the 16th when it is
// a Sunday. This is a deliberately fixed business rule, not a general
// weekend-adjustment convention.
func MidMonthJumpDay(year, month int) time.Time {
	d := Date(year, month, 15)
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

// BusinessDaysBetween returns the business days in [start, end).
func BusinessDaysBetween(start, end time.Time, cal *calendar.Calendar) []time.Time {
	var out []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if cal.IsBusinessDay(d) {
			out = append(out, d)
		}
	}
	return out
}
