// Package feed defines the parsed GTFS tables consumed by the timetable
// builder. The field semantics follow the GTFS reference where the names
// match; times are durations past local midnight on the service day and may
// exceed 24 hours.
package feed

import "time"

// Feed is an in-memory snapshot of the GTFS tables a builder run needs.
type Feed struct {
	Agencies      []Agency
	Stops         []StopRecord
	Routes        []RouteRecord
	Trips         []TripRecord
	StopTimes     []StopTimeRecord
	Calendars     []Calendar
	CalendarDates []CalendarDate
}

// Agency corresponds to a row in agency.txt.
type Agency struct {
	ID       string
	Name     string
	URL      string
	Timezone string // IANA zone name, e.g. "Europe/Stockholm"
}

// LocationType mirrors the GTFS location_type enumeration.
type LocationType int

const (
	Platform LocationType = iota
	Station
	EntranceExit
	Node
	BoardingArea
)

// StopRecord corresponds to a row in stops.txt.
type StopRecord struct {
	ID            string
	Name          string
	Lat           float64
	Lon           float64
	LocationType  LocationType
	ParentStation string
	PlatformCode  string
}

// RouteRecord corresponds to a row in routes.txt.
type RouteRecord struct {
	ID        string
	AgencyID  string
	ShortName string
	LongName  string
}

// TripRecord corresponds to a row in trips.txt.
type TripRecord struct {
	ID        string
	RouteID   string
	ServiceID string
	ShapeID   string
}

// StopTimeRecord corresponds to a row in stop_times.txt. Arrival and
// Departure are offsets from local midnight on the service day.
type StopTimeRecord struct {
	TripID       string
	StopSequence int
	StopID       string
	Arrival      time.Duration
	Departure    time.Duration
}

// Calendar corresponds to a row in calendar.txt. Weekdays is indexed by
// time.Weekday. StartDate and EndDate are inclusive dates at midnight UTC.
type Calendar struct {
	ServiceID string
	Weekdays  [7]bool
	StartDate time.Time
	EndDate   time.Time
}

// ExceptionType mirrors the GTFS exception_type enumeration.
type ExceptionType int

const (
	Added ExceptionType = iota + 1
	Removed
)

// CalendarDate corresponds to a row in calendar_dates.txt.
type CalendarDate struct {
	ServiceID string
	Date      time.Time
	Exception ExceptionType
}

// Date builds the canonical date representation used throughout the feed:
// midnight UTC on the given day. Only the year, month and day components are
// meaningful; the builder re-interprets dates in the agency zone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates an instant to its date components in the canonical
// representation used by Date.
func DateOnly(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// HMS builds a stop-time offset from hours, minutes and seconds. Hours may
// exceed 24 for trips that run past midnight.
func HMS(hours, minutes, seconds int) time.Duration {
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
}
