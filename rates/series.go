// Package rates provides the daily reference-rate series consumed by the
// settlement calculators. A Series is an ordered mapping from calendar date
// to a percentage rate with unique, strictly ascending dates. Gaps are
// permitted; each consumer decides how to handle them.
package rates

import (
	"sort"
	"time"
)

const dateKey = "2006-01-02"

// Observation is a single daily fixing (or projected value) in percent.
type Observation struct {
	Date time.Time `json:"effectiveDate"`
	Rate float64   `json:"rate"`
}

// Series is an immutable daily rate series. The zero value is not usable;
// construct with New.
type Series struct {
	obs   []Observation
	index map[string]float64
}

// New builds a Series from observations in any order. Dates are normalized
// to UTC midnight, sorted ascending, and deduplicated keeping the last
// occurrence for a given date.
func New(obs []Observation) *Series {
	byDate := make(map[string]Observation, len(obs))
	for _, o := range obs {
		o.Date = midnight(o.Date)
		byDate[o.Date.Format(dateKey)] = o
	}

	sorted := make([]Observation, 0, len(byDate))
	index := make(map[string]float64, len(byDate))
	for key, o := range byDate {
		sorted = append(sorted, o)
		index[key] = o.Rate
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	return &Series{obs: sorted, index: index}
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.obs) }

// On returns the rate fixed exactly on date, if present.
func (s *Series) On(date time.Time) (float64, bool) {
	r, ok := s.index[midnight(date).Format(dateKey)]
	return r, ok
}

// AsOf returns the observation with the greatest date not after date. This
// is the lookup underlying forward-fill: weekends and holidays resolve to
// the last prior fixing.
func (s *Series) AsOf(date time.Time) (Observation, bool) {
	d := midnight(date)
	// First index with obs date > d.
	i := sort.Search(len(s.obs), func(i int) bool {
		return s.obs[i].Date.After(d)
	})
	if i == 0 {
		return Observation{}, false
	}
	return s.obs[i-1], true
}

// First returns the earliest observation.
func (s *Series) First() (Observation, bool) {
	if len(s.obs) == 0 {
		return Observation{}, false
	}
	return s.obs[0], true
}

// Last returns the latest observation.
func (s *Series) Last() (Observation, bool) {
	if len(s.obs) == 0 {
		return Observation{}, false
	}
	return s.obs[len(s.obs)-1], true
}

// Observations returns a copy of the observations in ascending date order.
func (s *Series) Observations() []Observation {
	out := make([]Observation, len(s.obs))
	copy(out, s.obs)
	return out
}

// Between returns the sub-series with start <= date <= end. A zero start or
// end leaves that side unbounded.
func (s *Series) Between(start, end time.Time) *Series {
	var kept []Observation
	for _, o := range s.obs {
		if !start.IsZero() && o.Date.Before(midnight(start)) {
			continue
		}
		if !end.IsZero() && o.Date.After(midnight(end)) {
			continue
		}
		kept = append(kept, o)
	}
	return New(kept)
}

// Merge combines two series; where both have a fixing for the same date,
// other wins. Used by the cache layer to fold fresh rows into cached ones.
func (s *Series) Merge(other *Series) *Series {
	combined := make([]Observation, 0, len(s.obs)+other.Len())
	combined = append(combined, s.obs...)
	combined = append(combined, other.obs...)
	return New(combined)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
