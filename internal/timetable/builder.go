package timetable

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"raptor.opentransit.org/internal/feed"
)

// BuildOptions narrows the service dates materialised by Build. Zero values
// leave the corresponding side unbounded.
type BuildOptions struct {
	FromDate time.Time
	ToDate   time.Time
}

// Build assembles an immutable Timetable from parsed GTFS tables. The
// construction is deterministic: the same feed and options always produce
// the same arenas in the same order.
func Build(f *feed.Feed, opts BuildOptions) (*Timetable, error) {
	b := &builder{feed: f, opts: opts}
	return b.build()
}

type builder struct {
	feed *feed.Feed
	opts BuildOptions

	tt *Timetable

	agencyIndex  map[string]AgencyIdx
	stationIndex map[string]StationIdx
	routeRecords map[string]*feed.RouteRecord
	services     map[string][]time.Time
}

func (b *builder) build() (*Timetable, error) {
	b.tt = &Timetable{
		stopIndex:  make(map[string]StopIdx),
		routeIndex: make(map[string]RouteIdx),
	}
	if err := b.buildAgencies(); err != nil {
		return nil, err
	}
	if err := b.buildStops(); err != nil {
		return nil, err
	}
	if err := b.expandServices(); err != nil {
		return nil, err
	}
	if err := b.buildRoutes(); err != nil {
		return nil, err
	}
	b.buildServingIndex()
	return b.tt, nil
}

func (b *builder) buildAgencies() error {
	if len(b.feed.Agencies) == 0 {
		return ErrMissingAgency
	}
	b.agencyIndex = make(map[string]AgencyIdx, len(b.feed.Agencies))
	for _, record := range b.feed.Agencies {
		zone, err := time.LoadLocation(record.Timezone)
		if err != nil {
			return fmt.Errorf("agency %q: %w: %q", record.ID, ErrBadTimezone, record.Timezone)
		}
		b.agencyIndex[record.ID] = AgencyIdx(len(b.tt.Agencies))
		b.tt.Agencies = append(b.tt.Agencies, Agency{
			ID:       record.ID,
			Name:     record.Name,
			URL:      record.URL,
			Timezone: zone,
		})
	}
	return nil
}

// buildStops partitions the stop records by location type: stations first so
// platforms can resolve their parents, then platforms, then the attached
// points (entrances onto stations, boarding areas onto platforms). Generic
// nodes are not routable and are dropped.
func (b *builder) buildStops() error {
	b.stationIndex = make(map[string]StationIdx)
	for _, record := range b.feed.Stops {
		if record.LocationType != feed.Station {
			continue
		}
		b.stationIndex[record.ID] = StationIdx(len(b.tt.Stations))
		b.tt.Stations = append(b.tt.Stations, Station{ID: record.ID, Name: record.Name})
	}
	for _, record := range b.feed.Stops {
		if record.LocationType != feed.Platform {
			continue
		}
		station := StationIdx(None)
		if record.ParentStation != "" {
			parent, ok := b.stationIndex[record.ParentStation]
			if !ok {
				return fmt.Errorf("stop %q: %w: parent_station %q", record.ID, ErrUnknownStopRef, record.ParentStation)
			}
			station = parent
		}
		idx := StopIdx(len(b.tt.Stops))
		b.tt.stopIndex[record.ID] = idx
		b.tt.Stops = append(b.tt.Stops, Stop{
			ID:           record.ID,
			Name:         record.Name,
			PlatformCode: record.PlatformCode,
			Lat:          record.Lat,
			Lon:          record.Lon,
			Station:      station,
		})
		if station != None {
			b.tt.Stations[station].Stops = append(b.tt.Stations[station].Stops, idx)
		}
	}
	for _, record := range b.feed.Stops {
		switch record.LocationType {
		case feed.EntranceExit:
			if record.ParentStation == "" {
				continue
			}
			parent, ok := b.stationIndex[record.ParentStation]
			if !ok {
				return fmt.Errorf("entrance %q: %w: parent_station %q", record.ID, ErrUnknownStopRef, record.ParentStation)
			}
			b.tt.Stations[parent].Entrances = append(b.tt.Stations[parent].Entrances,
				Point{ID: record.ID, Lat: record.Lat, Lon: record.Lon})
		case feed.BoardingArea:
			parent, ok := b.tt.stopIndex[record.ParentStation]
			if !ok {
				return fmt.Errorf("boarding area %q: %w: parent_station %q", record.ID, ErrUnknownStopRef, record.ParentStation)
			}
			b.tt.Stops[parent].BoardingAreas = append(b.tt.Stops[parent].BoardingAreas,
				Point{ID: record.ID, Lat: record.Lat, Lon: record.Lon})
		}
	}
	return nil
}

// expandServices turns each calendar row into the concrete, sorted list of
// service dates inside the calendar range intersected with the build window,
// then applies the calendar_dates exceptions.
func (b *builder) expandServices() error {
	b.services = make(map[string][]time.Time, len(b.feed.Calendars))
	for _, cal := range b.feed.Calendars {
		if _, dup := b.services[cal.ServiceID]; dup {
			return fmt.Errorf("service %q: %w", cal.ServiceID, ErrDuplicateService)
		}
		b.services[cal.ServiceID] = b.expandCalendar(cal)
	}
	for _, exception := range b.feed.CalendarDates {
		dates, ok := b.services[exception.ServiceID]
		if !ok {
			return fmt.Errorf("calendar_dates: %w: %q", ErrUnknownServiceRef, exception.ServiceID)
		}
		date := feed.DateOnly(exception.Date)
		switch exception.Exception {
		case feed.Added:
			if b.insideWindow(date) {
				b.services[exception.ServiceID] = insertDate(dates, date)
			}
		case feed.Removed:
			pos := findDate(dates, date)
			if pos < 0 {
				return fmt.Errorf("service %q: cannot remove absent date %s",
					exception.ServiceID, date.Format("2006-01-02"))
			}
			b.services[exception.ServiceID] = append(dates[:pos], dates[pos+1:]...)
		}
	}
	return nil
}

func (b *builder) expandCalendar(cal feed.Calendar) []time.Time {
	lo := cal.StartDate
	if !b.opts.FromDate.IsZero() && b.opts.FromDate.After(lo) {
		lo = feed.DateOnly(b.opts.FromDate)
	}
	hi := cal.EndDate
	if !b.opts.ToDate.IsZero() && b.opts.ToDate.Before(hi) {
		hi = feed.DateOnly(b.opts.ToDate)
	}
	var dates []time.Time
	for day := lo; !day.After(hi); day = day.AddDate(0, 0, 1) {
		if cal.Weekdays[day.Weekday()] {
			dates = append(dates, day)
		}
	}
	return dates
}

func (b *builder) insideWindow(date time.Time) bool {
	if !b.opts.FromDate.IsZero() && date.Before(feed.DateOnly(b.opts.FromDate)) {
		return false
	}
	if !b.opts.ToDate.IsZero() && date.After(feed.DateOnly(b.opts.ToDate)) {
		return false
	}
	return true
}

func insertDate(dates []time.Time, date time.Time) []time.Time {
	pos := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(date) })
	if pos < len(dates) && dates[pos].Equal(date) {
		return dates
	}
	dates = append(dates, time.Time{})
	copy(dates[pos+1:], dates[pos:])
	dates[pos] = date
	return dates
}

func findDate(dates []time.Time, date time.Time) int {
	pos := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(date) })
	if pos < len(dates) && dates[pos].Equal(date) {
		return pos
	}
	return -1
}

// tripGroup accumulates the instantiated trips for one RAPTOR route key.
type tripGroup struct {
	routeID string
	stops   []StopIdx
	trips   []Trip
}

// buildRoutes instantiates one Trip per feed trip and active service date,
// groups them by (feed route id, stop sequence), sorts each group by
// first-stop departure and splits it into non-overtaking chains. Each chain
// becomes one RAPTOR route, which keeps departures at every position
// monotone and the router's binary search sound.
func (b *builder) buildRoutes() error {
	b.routeRecords = make(map[string]*feed.RouteRecord, len(b.feed.Routes))
	for i := range b.feed.Routes {
		b.routeRecords[b.feed.Routes[i].ID] = &b.feed.Routes[i]
	}

	timesByTrip := make(map[string][]feed.StopTimeRecord)
	for _, st := range b.feed.StopTimes {
		timesByTrip[st.TripID] = append(timesByTrip[st.TripID], st)
	}
	for _, times := range timesByTrip {
		sort.SliceStable(times, func(i, j int) bool {
			return times[i].StopSequence < times[j].StopSequence
		})
	}

	groups := make(map[string]*tripGroup)
	var keyOrder []string

	for _, tripRecord := range b.feed.Trips {
		times := timesByTrip[tripRecord.ID]
		if len(times) == 0 {
			return fmt.Errorf("trip %q: %w", tripRecord.ID, ErrEmptyTrip)
		}
		routeRecord, ok := b.routeRecords[tripRecord.RouteID]
		if !ok {
			return fmt.Errorf("trip %q: %w: %q", tripRecord.ID, ErrUnknownRouteRef, tripRecord.RouteID)
		}
		dates, ok := b.services[tripRecord.ServiceID]
		if !ok {
			return fmt.Errorf("trip %q: %w: %q", tripRecord.ID, ErrUnknownServiceRef, tripRecord.ServiceID)
		}
		zone := b.zoneFor(routeRecord)

		stops := make([]StopIdx, len(times))
		for i, st := range times {
			stop, ok := b.tt.stopIndex[st.StopID]
			if !ok {
				return fmt.Errorf("trip %q: %w: stop_times stop %q", tripRecord.ID, ErrUnknownStopRef, st.StopID)
			}
			stops[i] = stop
		}

		key := routeKey(tripRecord.RouteID, stops)
		group, ok := groups[key]
		if !ok {
			group = &tripGroup{routeID: tripRecord.RouteID, stops: stops}
			groups[key] = group
			keyOrder = append(keyOrder, key)
		}
		for _, day := range dates {
			group.trips = append(group.trips, b.instantiateTrip(tripRecord, times, stops, day, zone))
		}
	}

	for _, key := range keyOrder {
		group := groups[key]
		sort.SliceStable(group.trips, func(i, j int) bool {
			di, dj := group.trips[i].Departure(), group.trips[j].Departure()
			if di.Equal(dj) {
				return group.trips[i].ID < group.trips[j].ID
			}
			return di.Before(dj)
		})
		record := b.routeRecords[group.routeID]
		agency := b.agencyFor(record)
		for _, chain := range splitOvertaking(group.trips) {
			idx := RouteIdx(len(b.tt.Routes))
			if _, seen := b.tt.routeIndex[group.routeID]; !seen {
				b.tt.routeIndex[group.routeID] = idx
			}
			b.tt.Routes = append(b.tt.Routes, Route{
				ID:        group.routeID,
				ShortName: record.ShortName,
				LongName:  record.LongName,
				Agency:    agency,
				Stops:     group.stops,
				Trips:     chain,
			})
		}
	}
	return nil
}

func (b *builder) zoneFor(record *feed.RouteRecord) *time.Location {
	return b.tt.Agencies[b.agencyFor(record)].Timezone
}

func (b *builder) agencyFor(record *feed.RouteRecord) AgencyIdx {
	if idx, ok := b.agencyIndex[record.AgencyID]; ok {
		return idx
	}
	// Feeds with a single agency may omit agency_id on routes.
	return 0
}

// instantiateTrip materialises one vehicle run: the feed's relative times
// are resolved as wall-clock times on the service day in the agency zone.
func (b *builder) instantiateTrip(record feed.TripRecord, times []feed.StopTimeRecord,
	stops []StopIdx, day time.Time, zone *time.Location) Trip {
	stopTimes := make([]StopTime, len(times))
	for i, st := range times {
		stopTimes[i] = StopTime{
			Arrival:   resolveLocal(day, st.Arrival, zone),
			Departure: resolveLocal(day, st.Departure, zone),
			Stop:      stops[i],
		}
	}
	return Trip{ID: record.ID, ShapeID: record.ShapeID, StopTimes: stopTimes}
}

// resolveLocal interprets a feed offset as a wall-clock time on the service
// day: 09:00 stays 09:00 local even when a DST change earlier that day makes
// the day 23 or 25 hours long, and 26:30 is 02:30 on the next day. A time
// falling inside a spring-forward gap normalises past the gap, which is the
// earliest instant the timetable can honour.
func resolveLocal(day time.Time, offset time.Duration, zone *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, int(offset/time.Second), 0, zone)
}

// splitOvertaking partitions sorted trips into chains where arrivals and
// departures at every position are non-decreasing from one trip to the next.
// A trip joins the first chain it fits; overtaking trips open a new chain
// (and therefore a new RAPTOR route).
func splitOvertaking(trips []Trip) [][]Trip {
	var chains [][]Trip
	for _, trip := range trips {
		placed := false
		for i, chain := range chains {
			if follows(chain[len(chain)-1], trip) {
				chains[i] = append(chain, trip)
				placed = true
				break
			}
		}
		if !placed {
			chains = append(chains, []Trip{trip})
		}
	}
	return chains
}

func follows(earlier, later Trip) bool {
	for i := range earlier.StopTimes {
		if later.StopTimes[i].Departure.Before(earlier.StopTimes[i].Departure) {
			return false
		}
		if later.StopTimes[i].Arrival.Before(earlier.StopTimes[i].Arrival) {
			return false
		}
	}
	return true
}

func routeKey(routeID string, stops []StopIdx) string {
	var sb strings.Builder
	sb.WriteString(routeID)
	for _, stop := range stops {
		fmt.Fprintf(&sb, "|%d", stop)
	}
	return sb.String()
}

func (b *builder) buildServingIndex() {
	b.tt.routesServing = make([][]RouteStop, len(b.tt.Stops))
	for r := range b.tt.Routes {
		for pos, stop := range b.tt.Routes[r].Stops {
			b.tt.routesServing[stop] = append(b.tt.routesServing[stop],
				RouteStop{Route: RouteIdx(r), Pos: pos})
		}
	}
}
