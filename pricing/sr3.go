package pricing

import (
	"fmt"
	"time"

	"github.com/meenmo/stirfutures/calendar"
	"github.com/meenmo/stirfutures/dates"
	"github.com/meenmo/stirfutures/rates"
	"github.com/meenmo/stirfutures/rounding"
	"github.com/meenmo/stirfutures/scenario"
)

// SR3ReferenceQuarter returns the IMM-to-IMM reference window of a
// three-month SOFR future: the third Wednesday of the contract month
// (inclusive) through the third Wednesday three months later (exclusive).
func SR3ReferenceQuarter(year, month int) (time.Time, time.Time) {
	start := dates.ThirdWednesday(year, month)
	endYear, endMonth := dates.AddMonths(year, month, 3)
	end := dates.ThirdWednesday(endYear, endMonth)
	return start, end
}

// SR3LastTradingDay returns the business day immediately preceding the IMM
// date three months after the contract month.
func SR3LastTradingDay(year, month int, cal *calendar.Calendar) time.Time {
	delivYear, delivMonth := dates.AddMonths(year, month, 3)
	d := dates.ThirdWednesday(delivYear, delivMonth).AddDate(0, 0, -1)
	for !cal.IsBusinessDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// compoundedRate applies the CME daily-compounding formula
//
//	R = (Π (1 + r_i/100 · d_i/360) − 1) · 360/ΣD · 100
//
// where d_i is the number of days from business day i to the next business
// day in the window (or to the exclusive window end for the last one).
// dailyRates must align with bdays.
func compoundedRate(dailyRates []float64, bdays []time.Time, endExcl time.Time) float64 {
	product := 1.0
	totalDays := 0
	for i, r := range dailyRates {
		next := endExcl
		if i+1 < len(bdays) {
			next = bdays[i+1]
		}
		di := int(next.Sub(bdays[i]).Hours() / 24)
		totalDays += di
		product *= 1.0 + (float64(di)/360.0)*(r/100.0)
	}
	return (product - 1.0) * (360.0 / float64(totalDays)) * 100.0
}

// SR3SettlementFromSOFR computes the final settlement of a three-month
// SOFR future by compounding daily SOFR over the reference quarter. Unlike
// SR1, there is no forward-fill: every business day in the window must
// carry an exact fixing, and the first missing one fails the contract
// month with a MissingFixingError. The compounded rate is rounded to 4
// decimal places; the price is 100 minus the rounded rate with no further
// rounding.
func SR3SettlementFromSOFR(sofr *rates.Series, year, month int, cal *calendar.Calendar) (Settlement, error) {
	startIncl, endExcl := SR3ReferenceQuarter(year, month)
	bdays := dates.BusinessDaysBetween(startIncl, endExcl, cal)

	daily := make([]float64, 0, len(bdays))
	for _, d := range bdays {
		r, ok := sofr.On(d)
		if !ok {
			return Settlement{}, &MissingFixingError{Date: d}
		}
		daily = append(daily, r)
	}

	raw := compoundedRate(daily, bdays, endExcl)
	rnd := rounding.RoundHalfUp(raw, 4)
	return Settlement{Raw: raw, Rounded: rnd, Price: 100.0 - rnd}, nil
}

// SR3ExpectedSettlement computes a projected SR3 settlement from an
// unsecured-rate path via the scenario spread rules. The path must cover
// the whole reference quarter — which for late-year contracts extends into
// the following year — otherwise the result is no data rather than an
// extrapolation.
func SR3ExpectedSettlement(unsecured *rates.Series, year, month int, cal *calendar.Calendar, baseSpreadBPS, jumpBPS float64) (Settlement, error) {
	startIncl, endExcl := SR3ReferenceQuarter(year, month)
	bdays := dates.BusinessDaysBetween(startIncl, endExcl, cal)

	first, okFirst := unsecured.First()
	last, okLast := unsecured.Last()
	if !okFirst || !okLast || len(bdays) == 0 ||
		bdays[0].Before(first.Date) || endExcl.After(last.Date) {
		return Settlement{}, fmt.Errorf("%w: projected path does not cover %s to %s",
			ErrNoData, startIncl.Format("2006-01-02"), endExcl.Format("2006-01-02"))
	}

	daily := make([]float64, 0, len(bdays))
	for _, d := range bdays {
		r, err := scenario.ExpectedSOFROnDate(d, unsecured, cal, baseSpreadBPS, jumpBPS)
		if err != nil {
			return Settlement{}, fmt.Errorf("%w: %v", ErrNoData, err)
		}
		daily = append(daily, r)
	}

	raw := compoundedRate(daily, bdays, endExcl)
	rnd := rounding.RoundHalfUp(raw, 4)
	return Settlement{Raw: raw, Rounded: rnd, Price: 100.0 - rnd}, nil
}

// SR3Row is one line of the historical SR3 settlement table.
type SR3Row struct {
	Contract       string
	ContractMonth  string
	RefStartIncl   time.Time
	RefEndExcl     time.Time
	LastTradingDay time.Time
	Status         string
	ModelSettle    string
	Official       string
	DiffBPS        string
}

// SR3TableHeaders matches SR3Row.Strings element for element.
var SR3TableHeaders = []string{
	"Contract", "Contract Month", "Ref Start (incl)", "Ref End (excl)",
	"Last Trading Day", "Status", "Model", "Official", "Diff (bps)",
}

// Strings renders the row for tabular output.
func (r SR3Row) Strings() []string {
	return []string{
		r.Contract, r.ContractMonth,
		r.RefStartIncl.Format("2006-01-02"), r.RefEndExcl.Format("2006-01-02"),
		r.LastTradingDay.Format("2006-01-02"),
		r.Status, r.ModelSettle, r.Official, r.DiffBPS,
	}
}

// BuildSR3Table builds the twelve-month historical settlement table for a
// contract year. A month with a gap in its required fixings degrades to a
// "No Data" row; the remaining months still render.
func BuildSR3Table(sofr *rates.Series, year int, asof time.Time, cal *calendar.Calendar, official map[string]float64) []SR3Row {
	rows := make([]SR3Row, 0, 12)
	for month := 1; month <= 12; month++ {
		code := ContractCode(FamilySR3, year, month)
		startIncl, endExcl := SR3ReferenceQuarter(year, month)
		ltd := SR3LastTradingDay(year, month, cal)

		officialPrice, haveOfficial := official[code]

		row := SR3Row{
			Contract:       code,
			ContractMonth:  monthLabel(year, month),
			RefStartIncl:   startIncl,
			RefEndExcl:     endExcl,
			LastTradingDay: ltd,
			Status:         StatusNotExpired,
			ModelSettle:    StatusNotExpired,
			Official:       placeholder,
			DiffBPS:        notApplicable,
		}
		if haveOfficial {
			row.Official = fmt.Sprintf("%.4f", officialPrice)
		}

		if ltd.Before(asof) {
			row.Status = StatusExpired
			settle, err := SR3SettlementFromSOFR(sofr, year, month, cal)
			if err != nil {
				row.ModelSettle = StatusNoData
			} else {
				row.ModelSettle = fmt.Sprintf("%.4f", settle.Price)
				row.DiffBPS = formatDiffBPS(settle.Price, officialPrice, haveOfficial)
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// SR3ExpectedRow is one line of the forward-looking SR3 table.
type SR3ExpectedRow struct {
	Contract       string
	ContractMonth  string
	RefStartIncl   time.Time
	RefEndExcl     time.Time
	LastTradingDay time.Time
	Status         string
	ExpectedSettle string
}

// SR3ExpectedTableHeaders matches SR3ExpectedRow.Strings element for element.
var SR3ExpectedTableHeaders = []string{
	"Contract", "Contract Month", "Ref Start (incl)", "Ref End (excl)",
	"Last Trading Day", "Status", "Expected Settle",
}

// Strings renders the row for tabular output.
func (r SR3ExpectedRow) Strings() []string {
	return []string{
		r.Contract, r.ContractMonth,
		r.RefStartIncl.Format("2006-01-02"), r.RefEndExcl.Format("2006-01-02"),
		r.LastTradingDay.Format("2006-01-02"),
		r.Status, r.ExpectedSettle,
	}
}

// BuildSR3ExpectedTable builds the twelve-month scenario-projected SR3
// table for a contract year. The unsecured path must extend roughly one
// quarter past year end to cover the December contract; months it does not
// cover render as "No Data".
func BuildSR3ExpectedTable(unsecured *rates.Series, year int, cal *calendar.Calendar, baseSpreadBPS, jumpBPS float64) []SR3ExpectedRow {
	rows := make([]SR3ExpectedRow, 0, 12)
	for month := 1; month <= 12; month++ {
		startIncl, endExcl := SR3ReferenceQuarter(year, month)

		row := SR3ExpectedRow{
			Contract:       ContractCode(FamilySR3, year, month),
			ContractMonth:  monthLabel(year, month),
			RefStartIncl:   startIncl,
			RefEndExcl:     endExcl,
			LastTradingDay: SR3LastTradingDay(year, month, cal),
			Status:         StatusExpected,
			ExpectedSettle: StatusNoData,
		}

		if settle, err := SR3ExpectedSettlement(unsecured, year, month, cal, baseSpreadBPS, jumpBPS); err == nil {
			row.ExpectedSettle = fmt.Sprintf("%.4f", settle.Price)
		}

		rows = append(rows, row)
	}
	return rows
}
