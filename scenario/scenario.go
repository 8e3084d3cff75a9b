// Package scenario builds projected daily rate paths from policy-rate
// assumptions: a step-function midpoint path keyed to policy decision
// dates, and a secured-rate path derived from it by spread rules.
package scenario

import (
	"fmt"
	"sort"
	"time"

	"github.com/meenmo/stirfutures/calendar"
	"github.com/meenmo/stirfutures/dates"
	"github.com/meenmo/stirfutures/rates"
)

// Assumptions describes a policy-rate scenario: the ordered decision dates,
// which of them (by index) cut the rate, the cut size, and the lag in days
// between a decision and the rate change taking effect. Immutable once
// constructed.
type Assumptions struct {
	DecisionDates    []time.Time
	CutIndices       map[int]struct{}
	CutSizeBPS       float64
	EffectiveLagDays int
}

// CutsAt reports whether the i-th decision is assumed to cut the rate.
func (a Assumptions) CutsAt(i int) bool {
	_, ok := a.CutIndices[i]
	return ok
}

// BuildExpectedMidpointPath produces the daily target-midpoint path over
// [rangeStart, rangeEnd]. The rate starts at startMid and steps down by the
// cut size on each flagged decision's effective day (decision date plus
// lag). Effective dates are processed in ascending order; two decisions
// effective the same day both apply, in decision-index order.
func BuildExpectedMidpointPath(startMid float64, assume Assumptions, rangeStart, rangeEnd time.Time) *rates.Series {
	type effective struct {
		idx  int
		date time.Time
	}
	effs := make([]effective, 0, len(assume.DecisionDates))
	for i, d := range assume.DecisionDates {
		effs = append(effs, effective{idx: i, date: dates.Date(d.Year(), int(d.Month()), d.Day()).AddDate(0, 0, assume.EffectiveLagDays)})
	}
	sort.SliceStable(effs, func(i, j int) bool {
		return effs[i].date.Before(effs[j].date)
	})

	current := startMid
	j := 0
	var out []rates.Observation
	for day := rangeStart; !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		for j < len(effs) && effs[j].date.Equal(day) {
			if assume.CutsAt(effs[j].idx) {
				current -= assume.CutSizeBPS / 100.0
			}
			j++
		}
		out = append(out, rates.Observation{Date: day, Rate: current})
	}
	return rates.New(out)
}

// BuildExpectedSOFRDailyForMonth derives a projected secured-rate series
// for every calendar day of the month from an unsecured-rate path:
// secured = unsecured + base spread, with an extra jump on the mid-month
// jump day and the month's last business day. The two jump days are taken
// as a set, so a coincidence applies the jump once. A month day absent
// from the source path is an error for the whole month.
func BuildExpectedSOFRDailyForMonth(unsecured *rates.Series, year, month int, cal *calendar.Calendar, baseSpreadBPS, jumpBPS float64) (*rates.Series, error) {
	start, end := dates.MonthStartEnd(year, month)

	jumpDays := map[time.Time]struct{}{
		dates.MidMonthJumpDay(year, month):            {},
		dates.LastBusinessDayOfMonth(year, month, cal): {},
	}

	var out []rates.Observation
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		r, ok := unsecured.On(day)
		if !ok {
			return nil, fmt.Errorf("scenario: unsecured path has no rate on %s", day.Format("2006-01-02"))
		}
		sofr := r + baseSpreadBPS/100.0
		if _, jump := jumpDays[day]; jump {
			sofr += jumpBPS / 100.0
		}
		out = append(out, rates.Observation{Date: day, Rate: sofr})
	}
	return rates.New(out), nil
}

// ExpectedSOFROnDate is the single-date form of
// BuildExpectedSOFRDailyForMonth, used inside compounding loops.
func ExpectedSOFROnDate(date time.Time, unsecured *rates.Series, cal *calendar.Calendar, baseSpreadBPS, jumpBPS float64) (float64, error) {
	r, ok := unsecured.On(date)
	if !ok {
		return 0, fmt.Errorf("scenario: unsecured path has no rate on %s", date.Format("2006-01-02"))
	}
	sofr := r + baseSpreadBPS/100.0

	y, m := date.Year(), int(date.Month())
	if sameDay(date, dates.MidMonthJumpDay(y, m)) || sameDay(date, dates.LastBusinessDayOfMonth(y, m, cal)) {
		sofr += jumpBPS / 100.0
	}
	return sofr, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
