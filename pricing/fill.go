package pricing

import (
	"time"

	"github.com/meenmo/stirfutures/dates"
	"github.com/meenmo/stirfutures/rates"
)

// fillMonthDaily assembles one rate per calendar day of the month,
// forward-filling weekends and holidays from the last prior fixing in s.
// If some day has no fixing on or before it (a gap at the start of the
// series with nothing to fill from), the first such day is returned and
// the rates slice is nil.
func fillMonthDaily(s *rates.Series, year, month int) ([]float64, *time.Time) {
	start, end := dates.MonthStartEnd(year, month)

	var out []float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		obs, ok := s.AsOf(day)
		if !ok {
			missing := day
			return nil, &missing
		}
		out = append(out, obs.Rate)
	}
	return out, nil
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
