package raptor

import (
	"time"

	"raptor.opentransit.org/internal/timetable"
)

// Leg is one movement of a journey: a vehicle ride when Route is set, an
// on-foot transfer when Route is timetable.None.
type Leg struct {
	From      timetable.StopIdx
	To        timetable.StopIdx
	Departure time.Time
	Arrival   time.Time

	// Vehicle legs only.
	Route    timetable.RouteIdx
	Trip     int
	EnterPos int
	ExitPos  int

	// Walk legs only.
	WalkDuration time.Duration
}

// IsWalk reports whether the leg is an on-foot transfer.
func (l Leg) IsWalk() bool {
	return l.Route == timetable.None
}

// StopTimes returns the stop times covered by a vehicle leg, boarding stop
// through alighting stop inclusive. Walk legs have none.
func (l Leg) StopTimes(tt *timetable.Timetable) []timetable.StopTime {
	if l.IsWalk() {
		return nil
	}
	return tt.Routes[l.Route].Trips[l.Trip].StopTimes[l.EnterPos : l.ExitPos+1]
}

// Journey is an ordered, front-to-back chronological sequence of legs. A
// journey with no legs means the destination is unreachable (or equals the
// origin).
type Journey struct {
	Legs []Leg
}

// Empty reports whether the journey has no legs.
func (j Journey) Empty() bool {
	return len(j.Legs) == 0
}

// Arrival returns the arrival instant of the final leg.
func (j Journey) Arrival() (time.Time, bool) {
	if j.Empty() {
		return time.Time{}, false
	}
	return j.Legs[len(j.Legs)-1].Arrival, true
}

// Boardings counts the vehicle legs.
func (j Journey) Boardings() int {
	n := 0
	for _, leg := range j.Legs {
		if !leg.IsWalk() {
			n++
		}
	}
	return n
}
