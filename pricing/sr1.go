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

// SR1FinalSettlementFromSOFR computes the final settlement of a one-month
// SOFR future: the arithmetic average of daily SOFR over every calendar
// day of the contract month, weekends and holidays forward-filled from the
// prior business day's fixing. The average is rounded to 3 decimal places
// and the settlement price is 100 minus the rounded average, again to 3
// decimal places.
//
// A day that cannot be forward-filled makes the whole month fail with a
// MissingFixingError.
func SR1FinalSettlementFromSOFR(sofr *rates.Series, year, month int) (Settlement, error) {
	daily, missing := fillMonthDaily(sofr, year, month)
	if missing != nil {
		return Settlement{}, &MissingFixingError{Date: *missing}
	}

	raw := mean(daily)
	rnd := rounding.RoundHalfUp(raw, 3)
	price := rounding.RoundHalfUp(100.0-rnd, 3)
	return Settlement{Raw: raw, Rounded: rnd, Price: price}, nil
}

// SR1ExpectedSettlement computes a projected SR1 settlement from an
// unsecured-rate path, deriving the month's daily SOFR via the scenario
// spread rules. The path must cover every calendar day of the month.
func SR1ExpectedSettlement(unsecured *rates.Series, year, month int, cal *calendar.Calendar, baseSpreadBPS, jumpBPS float64) (Settlement, error) {
	sofrDaily, err := scenario.BuildExpectedSOFRDailyForMonth(unsecured, year, month, cal, baseSpreadBPS, jumpBPS)
	if err != nil {
		return Settlement{}, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	var daily []float64
	for _, o := range sofrDaily.Observations() {
		daily = append(daily, o.Rate)
	}

	raw := mean(daily)
	rnd := rounding.RoundHalfUp(raw, 3)
	price := rounding.RoundHalfUp(100.0-rnd, 3)
	return Settlement{Raw: raw, Rounded: rnd, Price: price}, nil
}

// SR1Row is one line of the historical SR1 settlement table.
type SR1Row struct {
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

// SR1TableHeaders matches SR1Row.Strings element for element.
var SR1TableHeaders = []string{
	"Contract", "Contract Month", "Ref Start", "Ref End", "Last Trading Day",
	"Status", "Avg SOFR (raw %)", "Avg SOFR (rnd %)", "Model Settle",
	"Official", "Diff (bps)",
}

// Strings renders the row for tabular output.
func (r SR1Row) Strings() []string {
	return []string{
		r.Contract, r.ContractMonth,
		r.RefStart.Format("2006-01-02"), r.RefEnd.Format("2006-01-02"),
		r.LastTradingDay.Format("2006-01-02"),
		r.Status, r.RawAvg, r.RoundedAvg, r.ModelSettle, r.Official, r.DiffBPS,
	}
}

// BuildSR1Table builds the twelve-month historical settlement table for a
// contract year, comparing model settlements against official prices where
// available. A month with insufficient data degrades to a "No Data" row;
// it never aborts the rest of the table.
func BuildSR1Table(sofr *rates.Series, year int, asof time.Time, cal *calendar.Calendar, official map[string]float64) []SR1Row {
	rows := make([]SR1Row, 0, 12)
	for month := 1; month <= 12; month++ {
		code := ContractCode(FamilySR1, year, month)
		refStart, refEnd := dates.MonthStartEnd(year, month)
		ltd := dates.LastBusinessDayOfMonth(year, month, cal)

		officialPrice, haveOfficial := official[code]

		row := SR1Row{
			Contract:       code,
			ContractMonth:  monthLabel(year, month),
			RefStart:       refStart,
			RefEnd:         refEnd,
			LastTradingDay: ltd,
			Status:         StatusNotExpired,
			RawAvg:         placeholder,
			RoundedAvg:     placeholder,
			ModelSettle:    StatusNotExpired,
			Official:       placeholder,
			DiffBPS:        notApplicable,
		}
		if haveOfficial {
			row.Official = fmt.Sprintf("%.4f", officialPrice)
		}

		if ltd.Before(asof) {
			row.Status = StatusExpired
			settle, err := SR1FinalSettlementFromSOFR(sofr, year, month)
			if err != nil {
				row.ModelSettle = StatusNoData
			} else {
				row.RawAvg = fmt.Sprintf("%.5f", settle.Raw)
				row.RoundedAvg = fmt.Sprintf("%.3f", settle.Rounded)
				row.ModelSettle = fmt.Sprintf("%.4f", settle.Price)
				row.DiffBPS = formatDiffBPS(settle.Price, officialPrice, haveOfficial)
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// SR1ExpectedRow is one line of the forward-looking SR1 table.
type SR1ExpectedRow struct {
	Contract        string
	ContractMonth   string
	RefStart        time.Time
	RefEnd          time.Time
	LastTradingDay  time.Time
	Status          string
	MidMonthJumpDay string
	LastBDJumpDay   string
	RawAvg          string
	RoundedAvg      string
	ExpectedSettle  string
}

// SR1ExpectedTableHeaders matches SR1ExpectedRow.Strings element for element.
var SR1ExpectedTableHeaders = []string{
	"Contract", "Contract Month", "Ref Start", "Ref End", "Last Trading Day",
	"Status", "Mid-month jump day", "Last BD jump day",
	"Avg SOFR (raw %)", "Avg SOFR (rnd %)", "Expected Settle",
}

// Strings renders the row for tabular output.
func (r SR1ExpectedRow) Strings() []string {
	return []string{
		r.Contract, r.ContractMonth,
		r.RefStart.Format("2006-01-02"), r.RefEnd.Format("2006-01-02"),
		r.LastTradingDay.Format("2006-01-02"),
		r.Status, r.MidMonthJumpDay, r.LastBDJumpDay,
		r.RawAvg, r.RoundedAvg, r.ExpectedSettle,
	}
}

// BuildSR1ExpectedTable builds the twelve-month scenario-projected SR1
// table for a contract year from an unsecured-rate path. Rows are always
// labeled as projections; a month outside the path's coverage renders as
// "No Data".
func BuildSR1ExpectedTable(unsecured *rates.Series, year int, cal *calendar.Calendar, baseSpreadBPS, jumpBPS float64) []SR1ExpectedRow {
	rows := make([]SR1ExpectedRow, 0, 12)
	for month := 1; month <= 12; month++ {
		refStart, refEnd := dates.MonthStartEnd(year, month)
		ltd := dates.LastBusinessDayOfMonth(year, month, cal)

		row := SR1ExpectedRow{
			Contract:        ContractCode(FamilySR1, year, month),
			ContractMonth:   monthLabel(year, month),
			RefStart:        refStart,
			RefEnd:          refEnd,
			LastTradingDay:  ltd,
			Status:          StatusExpected,
			MidMonthJumpDay: dates.MidMonthJumpDay(year, month).Format("2006-01-02"),
			LastBDJumpDay:   ltd.Format("2006-01-02"),
			RawAvg:          placeholder,
			RoundedAvg:      placeholder,
			ExpectedSettle:  StatusNoData,
		}

		if settle, err := SR1ExpectedSettlement(unsecured, year, month, cal, baseSpreadBPS, jumpBPS); err == nil {
			row.RawAvg = fmt.Sprintf("%.6f", settle.Raw)
			row.RoundedAvg = fmt.Sprintf("%.3f", settle.Rounded)
			row.ExpectedSettle = fmt.Sprintf("%.4f", settle.Price)
		}

		rows = append(rows, row)
	}
	return rows
}
