package main

import (
	"os"

	"github.com/meenmo/stirfutures/calendar"
	"github.com/meenmo/stirfutures/config"
	"github.com/meenmo/stirfutures/dates"
	"github.com/meenmo/stirfutures/pricing"
	"github.com/meenmo/stirfutures/report"
	"github.com/meenmo/stirfutures/scenario"
)

// Demo: project 2026 settlement tables from the built-in scenario
// assumptions (no network access required).
func main() {
	cfg := config.Default()
	cal := calendar.USGovernmentBond()

	assume, err := cfg.Assumptions()
	if err != nil {
		panic(err)
	}

	// Extend one quarter past year end so the December SR3 quarter,
	// which runs into March 2027, is fully covered.
	path := scenario.BuildExpectedMidpointPath(
		cfg.Midpoint(), assume, dates.Date(2026, 1, 1), dates.Date(2027, 4, 30))

	zqRows := pricing.BuildZQExpectedTable(path, 2026, cfg.Midpoint(), cal)
	report.Render(os.Stdout, pricing.ZQExpectedTableHeaders, rowStrings(zqRows))

	sr1Rows := pricing.BuildSR1ExpectedTable(path, 2026, cal, cfg.BaseSpreadBPS, cfg.JumpBPS)
	report.Render(os.Stdout, pricing.SR1ExpectedTableHeaders, rowStrings(sr1Rows))

	sr3Rows := pricing.BuildSR3ExpectedTable(path, 2026, cal, cfg.BaseSpreadBPS, cfg.JumpBPS)
	report.Render(os.Stdout, pricing.SR3ExpectedTableHeaders, rowStrings(sr3Rows))
}

func rowStrings[T interface{ Strings() []string }](rows []T) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Strings()
	}
	return out
}
