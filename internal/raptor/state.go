// Package raptor implements the round-based earliest-arrival search over a
// built timetable and transfer graph. Round k admits journeys with at most
// k vehicle boardings; on-foot transfers do not count as boardings.
package raptor

import (
	"maps"
	"sort"
	"time"

	"raptor.opentransit.org/internal/timetable"
)

// ride identifies the vehicle movement that produced a label.
type ride struct {
	route     timetable.RouteIdx
	trip      int
	boardPos  int
	alightPos int
}

// label records how a stop was reached in a round: the arrival instant, the
// stop the movement started from, and either a ride (vehicle) or a walk
// duration (on foot). The query origin has boarding set to None.
type label struct {
	arrival  time.Time
	boarding timetable.StopIdx
	hasRide  bool
	ride     ride
	walk     time.Duration
}

// state is the per-query working memory. It is owned by a single query and
// must not be shared.
type state struct {
	current     map[timetable.StopIdx]label
	previous    map[timetable.StopIdx]label
	best        map[timetable.StopIdx]time.Time
	marked      map[timetable.StopIdx]struct{}
	round       int
	destination timetable.StopIdx
}

func newState(origin, destination timetable.StopIdx, departure time.Time) *state {
	s := &state{
		current:     make(map[timetable.StopIdx]label),
		previous:    make(map[timetable.StopIdx]label),
		best:        make(map[timetable.StopIdx]time.Time),
		marked:      make(map[timetable.StopIdx]struct{}),
		destination: destination,
	}
	s.current[origin] = label{arrival: departure, boarding: timetable.None}
	s.best[origin] = departure
	s.marked[origin] = struct{}{}
	return s
}

// beginRound snapshots the current labels as the previous round and starts
// the next one. The marked set deliberately survives into the new round.
func (s *state) beginRound() {
	s.previous = maps.Clone(s.current)
	s.round++
}

// takeMarked returns the marked stops in ascending index order and clears
// the set.
func (s *state) takeMarked() []timetable.StopIdx {
	stops := s.markedStops()
	clear(s.marked)
	return stops
}

// markedStops returns the marked stops in ascending index order without
// clearing the set.
func (s *state) markedStops() []timetable.StopIdx {
	stops := make([]timetable.StopIdx, 0, len(s.marked))
	for stop := range s.marked {
		stops = append(stops, stop)
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i] < stops[j] })
	return stops
}

func (s *state) hasMarked() bool {
	return len(s.marked) > 0
}

// tryImprove installs the label if it strictly beats the stop's best known
// arrival and is not pruned by the destination's best arrival. Either bound
// holds trivially while unset. Returns whether the label was installed.
func (s *state) tryImprove(stop timetable.StopIdx, l label) bool {
	if best, ok := s.best[stop]; ok && !l.arrival.Before(best) {
		return false
	}
	if best, ok := s.best[s.destination]; ok && !l.arrival.Before(best) {
		return false
	}
	s.current[stop] = l
	s.best[stop] = l.arrival
	s.marked[stop] = struct{}{}
	return true
}

// mightCatchEarlierTrip reports whether the previous round reached the stop
// no later than the given departure, in which case an earlier trip might be
// boardable there.
func (s *state) mightCatchEarlierTrip(stop timetable.StopIdx, departure time.Time) bool {
	prev, ok := s.previous[stop]
	return ok && !prev.arrival.After(departure)
}

func (s *state) currentArrival(stop timetable.StopIdx) (time.Time, bool) {
	arrival, ok := s.best[stop]
	return arrival, ok
}

func (s *state) previousArrival(stop timetable.StopIdx) (time.Time, bool) {
	l, ok := s.previous[stop]
	return l.arrival, ok
}

func (s *state) currentLabel(stop timetable.StopIdx) (label, bool) {
	l, ok := s.current[stop]
	return l, ok
}
