package generator

import (
	"github.com/vuelachile/schedgen/internal/domain"
)

// Occurrence is one (route, day, slot) tuple to be materialized into a
// flight. Seq is the position in the overall enumeration order and drives
// deterministic carrier rotation.
type Occurrence struct {
	Route     domain.RouteTemplate
	DayOffset int
	Slot      int
	Seq       int
}

// Schedule enumerates occurrences for a route set over a horizon: route
// order first, then day ascending, then slot ascending. It holds no state
// beyond its inputs and a cursor, so a run can be restarted with Reset.
type Schedule struct {
	routes      []domain.RouteTemplate
	horizonDays int

	route, day, slot, seq int
}

// Expand builds the occurrence enumeration for the closed day range
// [start, start+horizonDays-1].
func Expand(routes []domain.RouteTemplate, horizonDays int) (*Schedule, error) {
	if horizonDays <= 0 {
		return nil, &domain.InvalidHorizonError{HorizonDays: horizonDays}
	}
	return &Schedule{routes: routes, horizonDays: horizonDays}, nil
}

// Len is the exact number of occurrences the schedule yields.
func (s *Schedule) Len() int {
	total := 0
	for _, r := range s.routes {
		total += s.horizonDays * r.DailyFrequency
	}
	return total
}

// Reset rewinds the enumeration to the first occurrence.
func (s *Schedule) Reset() {
	s.route, s.day, s.slot, s.seq = 0, 0, 0, 0
}

// Next returns the next occurrence, or false when the enumeration is done.
func (s *Schedule) Next() (Occurrence, bool) {
	for s.route < len(s.routes) {
		r := s.routes[s.route]
		if s.day < s.horizonDays {
			if s.slot < r.DailyFrequency {
				occ := Occurrence{Route: r, DayOffset: s.day, Slot: s.slot, Seq: s.seq}
				s.slot++
				s.seq++
				return occ, true
			}
			s.slot = 0
			s.day++
			continue
		}
		s.day = 0
		s.route++
	}
	return Occurrence{}, false
}
