// Package calendar provides holiday calendars for determining business days.
package calendar

import "time"

// Calendar answers whether a date is a business day under a fixed
// weekend-plus-holiday convention. It is immutable after construction and
// safe for concurrent use; build it once at the top level and pass it into
// every function that needs it.
type Calendar struct {
	name     string
	holidays map[string]struct{}
}

// New builds a calendar from a list of holiday dates in YYYY-MM-DD form.
func New(name string, holidays []string) *Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h] = struct{}{}
	}
	return &Calendar{name: name, holidays: set}
}

// USGovernmentBond returns the U.S. government bond market calendar
// (SIFMA full-closure schedule). See usbond.go for the covered years.
func USGovernmentBond() *Calendar {
	return New("US government bond", usBondHolidays)
}

// Name returns the calendar's display name.
func (c *Calendar) Name() string { return c.name }

// IsBusinessDay reports whether t is neither a weekend nor a holiday.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	_, holiday := c.holidays[t.Format("2006-01-02")]
	return !holiday
}

// IsHoliday reports whether t is in the holiday set, regardless of weekday.
func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[t.Format("2006-01-02")]
	return ok
}
