// Package timetable holds the immutable public-transit schedule the router
// searches over. All entities live in arenas owned by the Timetable and
// reference each other through small integer indices, so a built Timetable
// can be shared across any number of concurrent queries without
// synchronisation.
package timetable

import "time"

// Index types for the arenas. The sentinel value None marks an absent
// reference (for example a stop without a parent station).
type (
	StopIdx    int32
	StationIdx int32
	RouteIdx   int32
	AgencyIdx  int32
)

const None = -1

// Point is a named coordinate attached to a stop or station (a boarding
// area or an entrance). Opaque to routing.
type Point struct {
	ID  string
	Lat float64
	Lon float64
}

// Stop is a boardable platform.
type Stop struct {
	ID            string
	Name          string
	PlatformCode  string
	Lat           float64
	Lon           float64
	Station       StationIdx // None when the stop has no parent station
	BoardingAreas []Point
}

// Station groups stops for transfer purposes. Stations are not boardable.
type Station struct {
	ID        string
	Name      string
	Stops     []StopIdx
	Entrances []Point
}

// StopTime is the arrival and departure of one trip at one stop. Instants
// are absolute; they were resolved against a service date and the agency
// zone at build time.
type StopTime struct {
	Arrival   time.Time
	Departure time.Time
	Stop      StopIdx
}

// Trip is a single vehicle run on one service day.
type Trip struct {
	ID        string
	ShapeID   string
	StopTimes []StopTime
}

// Departure returns the departure instant from the trip's first stop.
func (t *Trip) Departure() time.Time {
	return t.StopTimes[0].Departure
}

// Route is a RAPTOR route: trips that share the feed route id and visit
// exactly the same stop sequence, sorted by first-stop departure.
type Route struct {
	ID        string
	ShortName string
	LongName  string
	Agency    AgencyIdx
	Stops     []StopIdx
	Trips     []Trip
}

// Agency corresponds to a GTFS agency; its zone supplies the defaults used
// when instantiating trips.
type Agency struct {
	ID       string
	Name     string
	URL      string
	Timezone *time.Location
}

// RouteStop locates a stop within a route's sequence.
type RouteStop struct {
	Route RouteIdx
	Pos   int
}

// Timetable is the immutable schedule. Construct it with Build; do not
// mutate it afterwards.
type Timetable struct {
	Stops    []Stop
	Stations []Station
	Routes   []Route
	Agencies []Agency

	stopIndex     map[string]StopIdx
	routeIndex    map[string]RouteIdx
	routesServing [][]RouteStop
}

// StopByID resolves a feed stop id to its arena index.
func (tt *Timetable) StopByID(id string) (StopIdx, bool) {
	idx, ok := tt.stopIndex[id]
	return idx, ok
}

// RouteByID resolves a feed route id to the first RAPTOR route carrying it.
// Several RAPTOR routes may share a feed id when trips diverge in their stop
// sequences.
func (tt *Timetable) RouteByID(id string) (RouteIdx, bool) {
	idx, ok := tt.routeIndex[id]
	return idx, ok
}

// RoutesServing returns every (route, position) pair at which the given stop
// appears. The slice is shared; callers must not modify it.
func (tt *Timetable) RoutesServing(stop StopIdx) []RouteStop {
	return tt.routesServing[stop]
}

// ValidStop reports whether idx addresses a stop in the arena.
func (tt *Timetable) ValidStop(idx StopIdx) bool {
	return idx >= 0 && int(idx) < len(tt.Stops)
}

// Siblings returns the other stops sharing a station with the given stop,
// or nil when the stop is not part of a station.
func (tt *Timetable) Siblings(stop StopIdx) []StopIdx {
	station := tt.Stops[stop].Station
	if station == None {
		return nil
	}
	var siblings []StopIdx
	for _, member := range tt.Stations[station].Stops {
		if member != stop {
			siblings = append(siblings, member)
		}
	}
	return siblings
}
