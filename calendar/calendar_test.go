package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/stirfutures/calendar"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestUSGovernmentBond_IsBusinessDay(t *testing.T) {
	t.Parallel()

	cal := calendar.USGovernmentBond()

	cases := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"ordinary weekday", date(2025, 7, 3), true},
		{"Saturday", date(2025, 7, 5), false},
		{"Sunday", date(2025, 7, 6), false},
		{"Independence Day 2025", date(2025, 7, 4), false},
		{"Independence Day 2026 observed on the 3rd", date(2026, 7, 3), false},
		{"Juneteenth 2025", date(2025, 6, 19), false},
		{"Carter day of mourning", date(2025, 1, 9), false},
		{"Good Friday 2025", date(2025, 4, 18), false},
		{"Columbus Day closes the bond market", date(2025, 10, 13), false},
		{"day after Thanksgiving trades", date(2025, 11, 28), true},
		{"Christmas 2026", date(2026, 12, 25), false},
		{"observed Christmas 2027", date(2027, 12, 24), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := cal.IsBusinessDay(tc.day); got != tc.want {
				t.Fatalf("IsBusinessDay(%s) = %v, want %v", tc.day.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestIsHoliday_IgnoresWeekday(t *testing.T) {
	t.Parallel()

	cal := calendar.New("test", []string{"2025-03-01"}) // a Saturday
	if !cal.IsHoliday(date(2025, 3, 1)) {
		t.Fatal("expected 2025-03-01 to be a holiday")
	}
	if cal.IsHoliday(date(2025, 3, 3)) {
		t.Fatal("2025-03-03 should not be a holiday")
	}
}

func TestNew_EmptyHolidays(t *testing.T) {
	t.Parallel()

	cal := calendar.New("weekends only", nil)
	if !cal.IsBusinessDay(date(2025, 12, 25)) {
		t.Fatal("calendar without holidays should treat Christmas as a business day")
	}
	if cal.IsBusinessDay(date(2025, 12, 27)) {
		t.Fatal("Saturday is never a business day")
	}
}
