// Package cmd provides the stir CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/meenmo/stirfutures/config"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stir",
	Short: "STIR futures settlement tables from NY Fed reference rates",
	Long: `stir computes settlement prices for CME short-term interest-rate
futures — one-month SOFR (SR1), three-month SOFR (SR3), and 30-day Fed
Funds (ZQ) — from daily SOFR/EFFR fixings, and projects forward
settlements from a policy-rate scenario.

Examples:
  stir fetch sofr --start 2024-12-01
  stir sr1 --year 2025 --asof 2026-01-15
  stir sr3 --expected`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level)

		cfg = config.Default()
		if cfgFile != "" {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config overriding the built-in defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(sr1Cmd)
	rootCmd.AddCommand(sr3Cmd)
	rootCmd.AddCommand(zqCmd)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t.UTC(), nil
}
