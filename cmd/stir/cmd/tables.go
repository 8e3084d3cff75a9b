package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meenmo/stirfutures/calendar"
	"github.com/meenmo/stirfutures/dates"
	"github.com/meenmo/stirfutures/marketdata/nyfed"
	"github.com/meenmo/stirfutures/pricing"
	"github.com/meenmo/stirfutures/rates"
	"github.com/meenmo/stirfutures/report"
	"github.com/meenmo/stirfutures/scenario"
)

var (
	tableYear     int
	tableAsOf     string
	tableExpected bool
)

var sr1Cmd = &cobra.Command{
	Use:   "sr1",
	Short: "One-month SOFR futures settlement table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cal := calendar.USGovernmentBond()
		year := resolveYear()

		if tableExpected {
			path, err := midpointPath(year)
			if err != nil {
				return err
			}
			rows := pricing.BuildSR1ExpectedTable(path, year, cal, cfg.BaseSpreadBPS, cfg.JumpBPS)
			report.Render(cmd.OutOrStdout(), pricing.SR1ExpectedTableHeaders, rowStrings(rows))
			return nil
		}

		sofr, asof, err := historicalInputs(cmd, "sofr")
		if err != nil {
			return err
		}
		rows := pricing.BuildSR1Table(sofr, year, asof, cal, cfg.OfficialSR1)
		report.Render(cmd.OutOrStdout(), pricing.SR1TableHeaders, rowStrings(rows))
		return nil
	},
}

var sr3Cmd = &cobra.Command{
	Use:   "sr3",
	Short: "Three-month SOFR futures settlement table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cal := calendar.USGovernmentBond()
		year := resolveYear()

		if tableExpected {
			path, err := midpointPath(year)
			if err != nil {
				return err
			}
			rows := pricing.BuildSR3ExpectedTable(path, year, cal, cfg.BaseSpreadBPS, cfg.JumpBPS)
			report.Render(cmd.OutOrStdout(), pricing.SR3ExpectedTableHeaders, rowStrings(rows))
			return nil
		}

		sofr, asof, err := historicalInputs(cmd, "sofr")
		if err != nil {
			return err
		}
		rows := pricing.BuildSR3Table(sofr, year, asof, cal, cfg.OfficialSR3)
		report.Render(cmd.OutOrStdout(), pricing.SR3TableHeaders, rowStrings(rows))
		return nil
	},
}

var zqCmd = &cobra.Command{
	Use:   "zq",
	Short: "30-day Fed Funds futures settlement table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cal := calendar.USGovernmentBond()
		year := resolveYear()

		if tableExpected {
			path, err := midpointPath(year)
			if err != nil {
				return err
			}
			rows := pricing.BuildZQExpectedTable(path, year, cfg.Midpoint(), cal)
			report.Render(cmd.OutOrStdout(), pricing.ZQExpectedTableHeaders, rowStrings(rows))
			return nil
		}

		effr, asof, err := historicalInputs(cmd, "effr")
		if err != nil {
			return err
		}
		rows := pricing.BuildZQTable(effr, year, asof, cal, cfg.OfficialZQ)
		report.Render(cmd.OutOrStdout(), pricing.ZQTableHeaders, rowStrings(rows))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{sr1Cmd, sr3Cmd, zqCmd} {
		c.Flags().IntVar(&tableYear, "year", 0, "contract year (default 2025 historical, 2026 expected)")
		c.Flags().StringVar(&tableAsOf, "asof", "", "as-of date for expiry status (default today)")
		c.Flags().BoolVar(&tableExpected, "expected", false, "project settlements from the configured scenario")
	}
}

func resolveYear() int {
	if tableYear != 0 {
		return tableYear
	}
	if tableExpected {
		return 2026
	}
	return 2025
}

// historicalInputs loads the cached rate series and resolves the as-of
// date used for expiry status.
func historicalInputs(cmd *cobra.Command, rate string) (*rates.Series, time.Time, error) {
	asof := time.Now().UTC().Truncate(24 * time.Hour)
	if tableAsOf != "" {
		parsed, err := parseDate(tableAsOf)
		if err != nil {
			return nil, time.Time{}, err
		}
		asof = parsed
	}

	start, err := parseDate(cfg.DataStartDate)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("config data_start_date: %w", err)
	}

	store := nyfed.NewStore(nyfed.DataDir(), nyfed.NewClient())
	series, err := store.Get(cmd.Context(), rate, start, time.Time{}, false)
	if err != nil {
		return nil, time.Time{}, err
	}
	return series, asof, nil
}

// midpointPath builds the scenario midpoint path for a projection year,
// extended one quarter past year end so December SR3 quarters are covered.
func midpointPath(year int) (*rates.Series, error) {
	assume, err := cfg.Assumptions()
	if err != nil {
		return nil, err
	}
	start := dates.Date(year, 1, 1)
	end := dates.Date(year+1, 4, 30)
	return scenario.BuildExpectedMidpointPath(cfg.Midpoint(), assume, start, end), nil
}

type stringer interface{ Strings() []string }

func rowStrings[T stringer](rows []T) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Strings()
	}
	return out
}
