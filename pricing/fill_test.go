package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/stirfutures/rates"
	"github.com/meenmo/stirfutures/rounding"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestCompoundedRate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		rates   []float64
		bdays   []time.Time
		endExcl time.Time
		want    float64
	}{
		{
			// Mon, Tue, Wed with a two-day weight into the Friday end:
			// d_i = {1, 1, 2}.
			name:    "weighted window",
			rates:   []float64{5.0, 5.1, 5.2},
			bdays:   []time.Time{day(2025, 1, 6), day(2025, 1, 7), day(2025, 1, 8)},
			endExcl: day(2025, 1, 10),
			want:    5.125906578936,
		},
		{
			// Thu, Fri, Mon: the Friday fixing carries the weekend,
			// d_i = {1, 3, 1}.
			name:    "weekend carry",
			rates:   []float64{4.33, 4.35, 4.29},
			bdays:   []time.Time{day(2025, 1, 2), day(2025, 1, 3), day(2025, 1, 6)},
			endExcl: day(2025, 1, 7),
			want:    4.334728185743,
		},
		{
			name:    "single day",
			rates:   []float64{4.5},
			bdays:   []time.Time{day(2025, 1, 6)},
			endExcl: day(2025, 1, 7),
			want:    4.5,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := compoundedRate(tc.rates, tc.bdays, tc.endExcl)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("compoundedRate = %.12f, want %.12f", got, tc.want)
			}
		})
	}
}

func TestCompoundedRate_RoundsToSettlement(t *testing.T) {
	t.Parallel()

	raw := compoundedRate(
		[]float64{5.0, 5.1, 5.2},
		[]time.Time{day(2025, 1, 6), day(2025, 1, 7), day(2025, 1, 8)},
		day(2025, 1, 10))

	rnd := rounding.RoundHalfUp(raw, 4)
	if rnd != 5.1259 {
		t.Fatalf("rounded rate = %v, want 5.1259", rnd)
	}
	if price := 100.0 - rnd; price != 94.8741 {
		t.Fatalf("price = %v, want 94.8741", price)
	}
}

func TestFillMonthDaily(t *testing.T) {
	t.Parallel()

	s := rates.New([]rates.Observation{
		{Date: day(2024, 12, 31), Rate: 4.49}, // fills Jan 1
		{Date: day(2025, 1, 2), Rate: 4.40},
		{Date: day(2025, 1, 3), Rate: 4.41}, // Friday, carries the weekend
		{Date: day(2025, 1, 6), Rate: 4.42},
	})

	daily, missing := fillMonthDaily(s, 2025, 1)
	if missing != nil {
		t.Fatalf("unexpected missing day %s", missing.Format("2006-01-02"))
	}
	if len(daily) != 31 {
		t.Fatalf("got %d daily rates, want 31", len(daily))
	}
	if daily[0] != 4.49 {
		t.Fatalf("Jan 1 fills from the prior fixing: got %v, want 4.49", daily[0])
	}
	if daily[3] != 4.41 || daily[4] != 4.41 {
		t.Fatalf("weekend should carry Friday's 4.41, got %v and %v", daily[3], daily[4])
	}
	if daily[30] != 4.42 {
		t.Fatalf("rest of month fills from the last fixing: got %v, want 4.42", daily[30])
	}
}

func TestFillMonthDaily_NothingToFillFrom(t *testing.T) {
	t.Parallel()

	s := rates.New([]rates.Observation{{Date: day(2025, 1, 15), Rate: 4.4}})

	daily, missing := fillMonthDaily(s, 2025, 1)
	if daily != nil {
		t.Fatal("expected nil rates when the month start cannot be filled")
	}
	if missing == nil || !missing.Equal(day(2025, 1, 1)) {
		t.Fatalf("missing = %v, want 2025-01-01", missing)
	}
}

func TestMean(t *testing.T) {
	t.Parallel()

	if got := mean([]float64{4.0, 4.5}); got != 4.25 {
		t.Fatalf("mean = %v, want 4.25", got)
	}
}

func TestFormatDiffBPS(t *testing.T) {
	t.Parallel()

	if got := formatDiffBPS(95.75, 95.74, true); got != "1.00" {
		t.Fatalf("diff = %q, want \"1.00\"", got)
	}
	if got := formatDiffBPS(95.74, 95.75, true); got != "1.00" {
		t.Fatalf("diff should be absolute, got %q", got)
	}
	if got := formatDiffBPS(95.75, 0, false); got != notApplicable {
		t.Fatalf("missing official should render %q, got %q", notApplicable, got)
	}
}
