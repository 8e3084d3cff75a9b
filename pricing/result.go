// Package pricing implements CME settlement calculations for three STIR
// futures families: one-month SOFR (SR1), three-month SOFR (SR3), and
// 30-day Fed Funds (ZQ), plus the twelve-month summary tables built on
// top of them.
package pricing

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoData marks a contract month whose settlement cannot be computed
// because a required fixing is missing. Callers must treat it as "no
// result", never as a zero rate.
var ErrNoData = errors.New("insufficient rate data")

// MissingFixingError reports the first date in a reference window for
// which no usable fixing exists. It unwraps to ErrNoData.
type MissingFixingError struct {
	Date time.Time
}

func (e *MissingFixingError) Error() string {
	return fmt.Sprintf("no fixing available for %s", e.Date.Format("2006-01-02"))
}

func (e *MissingFixingError) Unwrap() error { return ErrNoData }

// Settlement is the numeric result of a settlement calculation: the raw
// (unrounded) average or compounded rate, the same rate after CME
// rounding, and the resulting price (100 minus the rounded rate).
type Settlement struct {
	Raw     float64
	Rounded float64
	Price   float64
}

// Row status labels shared by the table builders.
const (
	StatusExpired    = "Expired"
	StatusNotExpired = "Not expired"
	StatusExpected   = "Expected"
	StatusNoData     = "No Data"
)

const (
	placeholder   = "—"
	notApplicable = "N/A"
)

// formatDiffBPS renders the absolute model-vs-official difference in basis
// points to two decimals, or N/A when either side is unavailable.
func formatDiffBPS(model float64, official float64, haveBoth bool) string {
	if !haveBoth {
		return notApplicable
	}
	diff := (model - official) * 100.0
	if diff < 0 {
		diff = -diff
	}
	return fmt.Sprintf("%.2f", diff)
}
