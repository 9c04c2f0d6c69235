package raptor

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"raptor.opentransit.org/internal/timetable"
	"raptor.opentransit.org/internal/transfer"
)

// ErrUnknownStop is returned when a query references a stop index outside
// the timetable.
var ErrUnknownStop = errors.New("query references a stop outside the timetable")

// Router answers earliest-arrival queries. It holds only immutable shared
// data, so a single Router serves any number of concurrent queries; each
// query allocates its own state.
type Router struct {
	tt        *timetable.Timetable
	transfers *transfer.Graph
}

// New builds a router over a timetable and its transfer graph.
func New(tt *timetable.Timetable, transfers *transfer.Graph) *Router {
	return &Router{tt: tt, transfers: transfers}
}

// Route finds a journey from origin to destination departing no earlier
// than the given instant, minimising arrival time round by round. An empty
// journey means the destination is unreachable; that is not an error.
func (r *Router) Route(origin, destination timetable.StopIdx, departure time.Time) (Journey, error) {
	if !r.tt.ValidStop(origin) {
		return Journey{}, fmt.Errorf("origin %d: %w", origin, ErrUnknownStop)
	}
	if !r.tt.ValidStop(destination) {
		return Journey{}, fmt.Errorf("destination %d: %w", destination, ErrUnknownStop)
	}

	st := newState(origin, destination, departure)
	// Seed with the origin's foot transfers so a journey whose optimal
	// first move is a walk is discoverable before any boarding.
	r.relaxTransfers(st)

	for st.hasMarked() {
		st.beginRound()
		marked := st.takeMarked()
		for _, scan := range r.collectRoutes(marked) {
			r.scanRoute(scan.route, scan.pos, st)
		}
		r.relaxTransfers(st)
	}
	return r.reconstruct(st), nil
}

type routeScan struct {
	route timetable.RouteIdx
	pos   int
}

// collectRoutes gathers every route serving a marked stop, keeping the
// earliest hop-on position per route. The result is sorted by route index
// so queries are deterministic.
func (r *Router) collectRoutes(marked []timetable.StopIdx) []routeScan {
	earliest := make(map[timetable.RouteIdx]int)
	for _, stop := range marked {
		for _, serving := range r.tt.RoutesServing(stop) {
			if pos, ok := earliest[serving.Route]; !ok || serving.Pos < pos {
				earliest[serving.Route] = serving.Pos
			}
		}
	}
	scans := make([]routeScan, 0, len(earliest))
	for route, pos := range earliest {
		scans = append(scans, routeScan{route: route, pos: pos})
	}
	sort.Slice(scans, func(i, j int) bool { return scans[i].route < scans[j].route })
	return scans
}

// scanRoute rides the earliest catchable trip from the hop-on position and
// tries to improve every later stop. When an improvement fails but the
// previous round reached the stop in time for the current departure, an
// earlier trip is adopted and the scan continues on it.
func (r *Router) scanRoute(route timetable.RouteIdx, hopOnPos int, st *state) {
	rt := &r.tt.Routes[route]
	if hopOnPos >= len(rt.Stops)-1 {
		return
	}
	boardStop := rt.Stops[hopOnPos]
	hopArrival, ok := st.previousArrival(boardStop)
	if !ok {
		return
	}
	tripIdx := earliestTripAt(rt, hopOnPos, hopArrival, len(rt.Trips))
	if tripIdx < 0 {
		return
	}
	boardPos := hopOnPos

	for j := hopOnPos + 1; j < len(rt.Stops); j++ {
		stopTime := &rt.Trips[tripIdx].StopTimes[j]
		improved := st.tryImprove(rt.Stops[j], label{
			arrival:  stopTime.Arrival,
			boarding: boardStop,
			hasRide:  true,
			ride:     ride{route: route, trip: tripIdx, boardPos: boardPos, alightPos: j},
		})
		if improved || !st.mightCatchEarlierTrip(rt.Stops[j], stopTime.Departure) {
			continue
		}
		prevArrival, _ := st.previousArrival(rt.Stops[j])
		// On equal departures the current trip is kept; only a strictly
		// earlier trip is adopted.
		if earlier := earliestTripAt(rt, j, prevArrival, tripIdx); earlier >= 0 && earlier < tripIdx {
			tripIdx = earlier
			boardPos = j
			boardStop = rt.Stops[j]
		}
	}
}

// earliestTripAt finds the lowest trip index below limit whose departure at
// the given position is at or after t, or -1. Departures at a fixed
// position are non-decreasing across a route's trips, so a binary search
// suffices.
func earliestTripAt(rt *timetable.Route, pos int, t time.Time, limit int) int {
	idx := sort.Search(limit, func(i int) bool {
		return !rt.Trips[i].StopTimes[pos].Departure.Before(t)
	})
	if idx == limit {
		return -1
	}
	return idx
}

// relaxTransfers walks one hop out of every currently marked stop. The
// snapshot keeps the relaxation single-hop: stops marked by a transfer in
// this pass are not walked from until the next round.
func (r *Router) relaxTransfers(st *state) {
	for _, from := range st.markedStops() {
		arrival, ok := st.currentArrival(from)
		if !ok {
			continue
		}
		for _, edge := range r.transfers.From(from) {
			st.tryImprove(edge.To, label{
				arrival:  arrival.Add(edge.Duration),
				boarding: from,
				walk:     edge.Duration,
			})
		}
	}
}

// reconstruct backtracks the destination's label chain into chronological
// legs. A missing destination label yields the empty journey.
func (r *Router) reconstruct(st *state) Journey {
	l, ok := st.currentLabel(st.destination)
	if !ok {
		return Journey{}
	}
	var legs []Leg
	at := st.destination
	for l.boarding != timetable.None {
		if l.hasRide {
			trip := &r.tt.Routes[l.ride.route].Trips[l.ride.trip]
			legs = append(legs, Leg{
				From:      l.boarding,
				To:        at,
				Departure: trip.StopTimes[l.ride.boardPos].Departure,
				Arrival:   l.arrival,
				Route:     l.ride.route,
				Trip:      l.ride.trip,
				EnterPos:  l.ride.boardPos,
				ExitPos:   l.ride.alightPos,
			})
		} else {
			legs = append(legs, Leg{
				From:         l.boarding,
				To:           at,
				Departure:    l.arrival.Add(-l.walk),
				Arrival:      l.arrival,
				Route:        timetable.None,
				Trip:         -1,
				WalkDuration: l.walk,
			})
		}
		at = l.boarding
		l, ok = st.currentLabel(at)
		if !ok {
			// Boarding stops always carry labels; reaching this means the
			// label invariants were violated.
			return Journey{}
		}
	}
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
	return Journey{Legs: legs}
}
