package pricing

import (
	"fmt"
	"time"

	"github.com/meenmo/stirfutures/calendar"
	"github.com/meenmo/stirfutures/dates"
	"github.com/meenmo/stirfutures/rates"
	"github.com/meenmo/stirfutures/rounding"
)

// ZQFinalSettlementFromEFFR computes the final settlement of a 30-day Fed
// Funds future: the arithmetic average of daily EFFR over every calendar
// day of the contract month, forward-filled like SR1. The average is
// rounded to 3 decimal places; the settlement price is 100 minus the
// rounded average, rounded to 4 decimal places.
func ZQFinalSettlementFromEFFR(effr *rates.Series, year, month int) (Settlement, error) {
	daily, missing := fillMonthDaily(effr, year, month)
	if missing != nil {
		return Settlement{}, &MissingFixingError{Date: *missing}
	}

	raw := mean(daily)
	rnd := rounding.RoundHalfUp(raw, 3)
	price := rounding.RoundHalfUp(100.0-rnd, 4)
	return Settlement{Raw: raw, Rounded: rnd, Price: price}, nil
}

// ZQExpectedSettlement computes a projected ZQ settlement directly from a
// daily unsecured-rate path (the target midpoint path): no spread
// adjustment applies. The path must cover every calendar day of the month.
func ZQExpectedSettlement(unsecured *rates.Series, year, month int) (Settlement, error) {
	start, end := dates.MonthStartEnd(year, month)

	var daily []float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		r, ok := unsecured.On(day)
		if !ok {
			return Settlement{}, fmt.Errorf("%w: path has no rate on %s", ErrNoData, day.Format("2006-01-02"))
		}
		daily = append(daily, r)
	}

	raw := mean(daily)
	rnd := rounding.RoundHalfUp(raw, 3)
	price := rounding.RoundHalfUp(100.0-rnd, 4)
	return Settlement{Raw: raw, Rounded: rnd, Price: price}, nil
}

// ZQRow is one line of the historical ZQ settlement table.
type ZQRow struct {
	Contract       string
	ContractMonth  string
	RefStart       time.Time
	RefEnd         time.Time
	LastTradingDay time.Time
	Status         string
	RawAvg         string
	RoundedAvg     string
	ModelSettle    string
	Official       string
	DiffBPS        string
}

// ZQTableHeaders matches ZQRow.Strings element for element.
var ZQTableHeaders = []string{
	"Contract", "Contract Month", "Ref Start", "Ref End", "Last Trading Day",
	"Status", "Avg EFFR (raw %)", "Avg EFFR (rnd %)", "Model Settle",
	"Official", "Diff (bps)",
}

// Strings renders the row for tabular output.
func (r ZQRow) Strings() []string {
	return []string{
		r.Contract, r.ContractMonth,
		r.RefStart.Format("2006-01-02"), r.RefEnd.Format("2006-01-02"),
		r.LastTradingDay.Format("2006-01-02"),
		r.Status, r.RawAvg, r.RoundedAvg, r.ModelSettle, r.Official, r.DiffBPS,
	}
}

// BuildZQTable builds the twelve-month historical settlement table for a
// contract year. A month whose fixings cannot be assembled renders as a
// "No Data" row without aborting the rest.
func BuildZQTable(effr *rates.Series, year int, asof time.Time, cal *calendar.Calendar, official map[string]float64) []ZQRow {
	rows := make([]ZQRow, 0, 12)
	for month := 1; month <= 12; month++ {
		code := ContractCode(FamilyZQ, year, month)
		refStart, refEnd := dates.MonthStartEnd(year, month)
		ltd := dates.LastBusinessDayOfMonth(year, month, cal)

		officialPrice, haveOfficial := official[code]

		row := ZQRow{
			Contract:       code,
			ContractMonth:  monthLabel(year, month),
			RefStart:       refStart,
			RefEnd:         refEnd,
			LastTradingDay: ltd,
			RawAvg:         placeholder,
			RoundedAvg:     placeholder,
			Official:       placeholder,
			DiffBPS:        notApplicable,
		}
		if haveOfficial {
			row.Official = fmt.Sprintf("%.4f", officialPrice)
		}

		settle, err := ZQFinalSettlementFromEFFR(effr, year, month)
		if err != nil {
			row.Status = StatusNoData
			row.ModelSettle = StatusNoData
		} else {
			row.Status = StatusNotExpired
			if ltd.Before(asof) {
				row.Status = StatusExpired
			}
			row.RawAvg = fmt.Sprintf("%.6f", settle.Raw)
			row.RoundedAvg = fmt.Sprintf("%.3f", settle.Rounded)
			row.ModelSettle = fmt.Sprintf("%.4f", settle.Price)
			row.DiffBPS = formatDiffBPS(settle.Price, officialPrice, haveOfficial)
		}

		rows = append(rows, row)
	}
	return rows
}

// ZQExpectedRow is one line of the forward-looking ZQ table.
type ZQExpectedRow struct {
	Contract       string
	ContractMonth  string
	RefStart       time.Time
	RefEnd         time.Time
	LastTradingDay time.Time
	Status         string
	StartMidpoint  string
	RawAvg         string
	RoundedAvg     string
	ExpectedPrice  string
}

// ZQExpectedTableHeaders matches ZQExpectedRow.Strings element for element.
var ZQExpectedTableHeaders = []string{
	"Contract", "Contract Month", "Ref Start", "Ref End", "Last Trading Day",
	"Status", "Start Midpoint (%)", "Avg EFFR (raw %)", "Avg EFFR (rnd %)",
	"Expected Price",
}

// Strings renders the row for tabular output.
func (r ZQExpectedRow) Strings() []string {
	return []string{
		r.Contract, r.ContractMonth,
		r.RefStart.Format("2006-01-02"), r.RefEnd.Format("2006-01-02"),
		r.LastTradingDay.Format("2006-01-02"),
		r.Status, r.StartMidpoint, r.RawAvg, r.RoundedAvg, r.ExpectedPrice,
	}
}

// BuildZQExpectedTable builds the twelve-month scenario-projected ZQ table
// for a contract year from a daily midpoint path. startMid is echoed into
// each row for display.
func BuildZQExpectedTable(midPath *rates.Series, year int, startMid float64, cal *calendar.Calendar) []ZQExpectedRow {
	rows := make([]ZQExpectedRow, 0, 12)
	for month := 1; month <= 12; month++ {
		refStart, refEnd := dates.MonthStartEnd(year, month)

		row := ZQExpectedRow{
			Contract:       ContractCode(FamilyZQ, year, month),
			ContractMonth:  monthLabel(year, month),
			RefStart:       refStart,
			RefEnd:         refEnd,
			LastTradingDay: dates.LastBusinessDayOfMonth(year, month, cal),
			Status:         StatusExpected,
			StartMidpoint:  fmt.Sprintf("%.3f", startMid),
			RawAvg:         placeholder,
			RoundedAvg:     placeholder,
			ExpectedPrice:  StatusNoData,
		}

		if settle, err := ZQExpectedSettlement(midPath, year, month); err == nil {
			row.RawAvg = fmt.Sprintf("%.6f", settle.Raw)
			row.RoundedAvg = fmt.Sprintf("%.3f", settle.Rounded)
			row.ExpectedPrice = fmt.Sprintf("%.4f", settle.Price)
		}

		rows = append(rows, row)
	}
	return rows
}
