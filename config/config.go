// Package config holds the scenario assumptions and validation constants
// used by the CLI and example programs. Everything here is a default the
// caller can override; the pricing core itself takes all parameters
// explicitly.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/stirfutures/scenario"
)

// Config collects rate-fetch, scenario, and validation settings.
type Config struct {
	// DataStartDate bounds historical rate fetches (YYYY-MM-DD).
	DataStartDate string `yaml:"data_start_date"`

	// Fed funds target range, the starting point for scenarios.
	FedFundsLower float64 `yaml:"fed_funds_lower"`
	FedFundsUpper float64 `yaml:"fed_funds_upper"`

	// FOMC decision (meeting end) dates for the projection year.
	FOMCDecisionDates []string `yaml:"fomc_decision_dates"`

	// CutIndices flags which decisions (0-indexed) cut the rate.
	CutIndices       []int   `yaml:"cut_indices"`
	CutSizeBPS       float64 `yaml:"cut_size_bps"`
	EffectiveLagDays int     `yaml:"effective_lag_days"`

	// SOFR spread over EFFR: base every day, jump extra on mid-month and
	// month-end days.
	BaseSpreadBPS float64 `yaml:"base_spread_bps"`
	JumpBPS       float64 `yaml:"jump_bps"`

	// Official reference prices by contract code, for model validation.
	OfficialSR1 map[string]float64 `yaml:"official_sr1"`
	OfficialSR3 map[string]float64 `yaml:"official_sr3"`
	OfficialZQ  map[string]float64 `yaml:"official_zq"`
}

// Default returns the built-in configuration: the 2026 FOMC schedule with
// cuts assumed at the first, third, fifth, and seventh meetings, and the
// 2025 Barchart settlement prices for validation.
func Default() Config {
	return Config{
		DataStartDate: "2024-12-01",

		FedFundsLower: 3.50,
		FedFundsUpper: 3.75,

		FOMCDecisionDates: []string{
			"2026-01-28", "2026-03-18", "2026-04-29", "2026-06-17",
			"2026-07-29", "2026-09-16", "2026-10-28", "2026-12-09",
		},
		CutIndices:       []int{0, 2, 4, 6},
		CutSizeBPS:       25,
		EffectiveLagDays: 1,

		BaseSpreadBPS: 3.0,
		JumpBPS:       10.0,

		OfficialSR1: map[string]float64{
			"SR1F5": 95.6825, "SR1G5": 95.6575, "SR1H5": 95.6710,
			"SR1J5": 95.6570, "SR1K5": 95.6950, "SR1M5": 95.6850,
			"SR1N5": 95.6650, "SR1Q5": 95.6525, "SR1U5": 95.7030,
			"SR1V5": 95.8075, "SR1X5": 96.0025, "SR1Z5": 96.2180,
		},
		OfficialSR3: map[string]float64{
			"SR3F5": 95.6390, "SR3G5": 95.6455, "SR3H5": 95.6577,
			"SR3J5": 95.6588, "SR3K5": 95.6511, "SR3M5": 95.6240,
			"SR3N5": 95.6788, "SR3Q5": 95.7690, "SR3U5": 95.9134,
			"SR3V5": 96.0764,
		},
		OfficialZQ: map[string]float64{
			"ZQF5": 95.6725, "ZQG5": 95.6700, "ZQH5": 95.6700,
			"ZQJ5": 95.6700, "ZQK5": 95.6700, "ZQM5": 95.6700,
			"ZQN5": 95.6700, "ZQQ5": 95.6700, "ZQU5": 95.7750,
			"ZQV5": 95.9125, "ZQX5": 96.1225, "ZQZ5": 96.2790,
		},
	}
}

// Load reads a YAML file over the defaults: fields present in the file
// replace the default values, the rest keep them.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Midpoint returns the middle of the fed funds target range.
func (c Config) Midpoint() float64 {
	return (c.FedFundsLower + c.FedFundsUpper) / 2.0
}

// DecisionDates parses the FOMC decision dates.
func (c Config) DecisionDates() ([]time.Time, error) {
	out := make([]time.Time, 0, len(c.FOMCDecisionDates))
	for _, s := range c.FOMCDecisionDates {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("config: fomc date %q: %w", s, err)
		}
		out = append(out, t.UTC())
	}
	return out, nil
}

// Assumptions converts the configured scenario into the form the path
// builders consume.
func (c Config) Assumptions() (scenario.Assumptions, error) {
	decisions, err := c.DecisionDates()
	if err != nil {
		return scenario.Assumptions{}, err
	}
	cuts := make(map[int]struct{}, len(c.CutIndices))
	for _, i := range c.CutIndices {
		cuts[i] = struct{}{}
	}
	return scenario.Assumptions{
		DecisionDates:    decisions,
		CutIndices:       cuts,
		CutSizeBPS:       c.CutSizeBPS,
		EffectiveLagDays: c.EffectiveLagDays,
	}, nil
}
