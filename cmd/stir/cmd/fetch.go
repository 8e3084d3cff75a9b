package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meenmo/stirfutures/marketdata/nyfed"
)

var (
	fetchStart   string
	fetchEnd     string
	fetchRefresh bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch {sofr|effr}",
	Short: "Fetch and cache NY Fed reference rates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(args[0])

		start, end, err := fetchWindow()
		if err != nil {
			return err
		}

		store := nyfed.NewStore(nyfed.DataDir(), nyfed.NewClient())
		series, err := store.Get(cmd.Context(), name, start, end, fetchRefresh)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d rows for %s.\n", series.Len(), strings.ToUpper(name))
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "start date (YYYY-MM-DD, default from config)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "end date (YYYY-MM-DD)")
	fetchCmd.Flags().BoolVar(&fetchRefresh, "refresh", false, "force refresh from the NY Fed API")
}

func fetchWindow() (time.Time, time.Time, error) {
	startStr := fetchStart
	if startStr == "" {
		startStr = cfg.DataStartDate
	}

	var start, end time.Time
	var err error
	if startStr != "" {
		if start, err = parseDate(startStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if fetchEnd != "" {
		if end, err = parseDate(fetchEnd); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}
