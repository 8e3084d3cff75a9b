package scenario_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/stirfutures/calendar"
	"github.com/meenmo/stirfutures/rates"
	"github.com/meenmo/stirfutures/scenario"
)

const tol = 1e-12

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func defaultAssumptions() scenario.Assumptions {
	return scenario.Assumptions{
		DecisionDates: []time.Time{
			day(2026, 1, 28), day(2026, 3, 18), day(2026, 4, 29), day(2026, 6, 17),
			day(2026, 7, 29), day(2026, 9, 16), day(2026, 10, 28), day(2026, 12, 9),
		},
		CutIndices:       map[int]struct{}{0: {}, 2: {}, 4: {}, 6: {}},
		CutSizeBPS:       25,
		EffectiveLagDays: 1,
	}
}

func rateOn(t *testing.T, s *rates.Series, d time.Time) float64 {
	t.Helper()
	r, ok := s.On(d)
	if !ok {
		t.Fatalf("path has no rate on %s", d.Format("2006-01-02"))
	}
	return r
}

func TestBuildExpectedMidpointPath(t *testing.T) {
	t.Parallel()

	path := scenario.BuildExpectedMidpointPath(3.625, defaultAssumptions(), day(2026, 1, 1), day(2026, 12, 31))

	cases := []struct {
		date time.Time
		want float64
	}{
		{day(2026, 1, 1), 3.625},
		{day(2026, 1, 28), 3.625}, // decision day itself is unchanged
		{day(2026, 1, 29), 3.375}, // first cut effective with one-day lag
		{day(2026, 3, 19), 3.375}, // March meeting holds
		{day(2026, 4, 29), 3.375},
		{day(2026, 4, 30), 3.125},
		{day(2026, 7, 30), 2.875},
		{day(2026, 10, 29), 2.625},
		{day(2026, 12, 31), 2.625}, // December meeting holds
	}

	for _, tc := range cases {
		if got := rateOn(t, path, tc.date); math.Abs(got-tc.want) > tol {
			t.Errorf("midpoint on %s = %v, want %v", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}

	if path.Len() != 365 {
		t.Fatalf("path covers %d days, want 365", path.Len())
	}
}

func TestBuildExpectedMidpointPath_NoCuts(t *testing.T) {
	t.Parallel()

	assume := defaultAssumptions()
	assume.CutIndices = nil

	path := scenario.BuildExpectedMidpointPath(3.625, assume, day(2026, 1, 1), day(2026, 12, 31))
	for _, o := range path.Observations() {
		if o.Rate != 3.625 {
			t.Fatalf("rate on %s = %v, want a flat 3.625", o.Date.Format("2006-01-02"), o.Rate)
		}
	}
}

func TestBuildExpectedSOFRDailyForMonth(t *testing.T) {
	t.Parallel()

	cal := calendar.USGovernmentBond()

	// Flat unsecured path over January 2026.
	var obs []rates.Observation
	for d := day(2026, 1, 1); !d.After(day(2026, 1, 31)); d = d.AddDate(0, 0, 1) {
		obs = append(obs, rates.Observation{Date: d, Rate: 3.625})
	}
	unsecured := rates.New(obs)

	sofr, err := scenario.BuildExpectedSOFRDailyForMonth(unsecured, 2026, 1, cal, 3, 10)
	if err != nil {
		t.Fatalf("BuildExpectedSOFRDailyForMonth: %v", err)
	}
	if sofr.Len() != 31 {
		t.Fatalf("secured path covers %d days, want 31", sofr.Len())
	}

	base := 3.625 + 0.03
	jump := base + 0.10

	// Jan 15 2026 is the mid-month jump day; Jan 30 is the last business
	// day (the 31st is a Saturday).
	cases := []struct {
		date time.Time
		want float64
	}{
		{day(2026, 1, 2), base},
		{day(2026, 1, 15), jump},
		{day(2026, 1, 16), base},
		{day(2026, 1, 30), jump},
		{day(2026, 1, 31), base},
	}
	for _, tc := range cases {
		if got := rateOn(t, sofr, tc.date); math.Abs(got-tc.want) > tol {
			t.Errorf("secured rate on %s = %v, want %v", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestBuildExpectedSOFRDailyForMonth_CoincidentJumpDaysApplyOnce(t *testing.T) {
	t.Parallel()

	// Close out the back half of February so the last business day lands
	// on the 17th, which is also the mid-month jump day (the 15th is a
	// Saturday). The jump must apply once, not twice.
	var holidays []string
	for d := day(2025, 2, 18); !d.After(day(2025, 2, 28)); d = d.AddDate(0, 0, 1) {
		holidays = append(holidays, d.Format("2006-01-02"))
	}
	cal := calendar.New("short February", holidays)

	var obs []rates.Observation
	for d := day(2025, 2, 1); !d.After(day(2025, 2, 28)); d = d.AddDate(0, 0, 1) {
		obs = append(obs, rates.Observation{Date: d, Rate: 4.00})
	}
	sofr, err := scenario.BuildExpectedSOFRDailyForMonth(rates.New(obs), 2025, 2, cal, 3, 10)
	if err != nil {
		t.Fatalf("BuildExpectedSOFRDailyForMonth: %v", err)
	}

	want := 4.00 + 0.03 + 0.10
	if got := rateOn(t, sofr, day(2025, 2, 17)); math.Abs(got-want) > tol {
		t.Fatalf("coincident jump day rate = %v, want %v (single jump)", got, want)
	}
}

func TestBuildExpectedSOFRDailyForMonth_MissingDay(t *testing.T) {
	t.Parallel()

	cal := calendar.USGovernmentBond()
	unsecured := rates.New([]rates.Observation{{Date: day(2026, 1, 1), Rate: 3.625}})

	if _, err := scenario.BuildExpectedSOFRDailyForMonth(unsecured, 2026, 1, cal, 3, 10); err == nil {
		t.Fatal("expected an error when the unsecured path does not cover the month")
	}
}

func TestExpectedSOFROnDate(t *testing.T) {
	t.Parallel()

	cal := calendar.USGovernmentBond()
	unsecured := rates.New([]rates.Observation{
		{Date: day(2026, 1, 14), Rate: 3.625},
		{Date: day(2026, 1, 15), Rate: 3.625},
	})

	got, err := scenario.ExpectedSOFROnDate(day(2026, 1, 14), unsecured, cal, 3, 10)
	if err != nil {
		t.Fatalf("ExpectedSOFROnDate: %v", err)
	}
	if want := 3.625 + 0.03; math.Abs(got-want) > tol {
		t.Fatalf("plain day = %v, want %v", got, want)
	}

	got, err = scenario.ExpectedSOFROnDate(day(2026, 1, 15), unsecured, cal, 3, 10)
	if err != nil {
		t.Fatalf("ExpectedSOFROnDate: %v", err)
	}
	if want := 3.625 + 0.03 + 0.10; math.Abs(got-want) > tol {
		t.Fatalf("jump day = %v, want %v", got, want)
	}

	if _, err := scenario.ExpectedSOFROnDate(day(2026, 1, 16), unsecured, cal, 3, 10); err == nil {
		t.Fatal("expected an error for a date outside the path")
	}
}
