package gtfs

import (
	"time"

	"raptor.opentransit.org/internal/geo"
	"raptor.opentransit.org/internal/transfer"
)

// Config describes where the GTFS data comes from and how the planner is
// assembled from it.
type Config struct {
	// GtfsSource is either a URL or a local path to a zipped GTFS feed.
	GtfsSource string
	// FromDate/ToDate narrow the service dates materialised into the
	// timetable. Zero values leave the window open.
	FromDate time.Time
	ToDate   time.Time

	Walk     geo.WalkTimeConfig
	Transfer transfer.Config

	Verbose bool
}

// DefaultConfig fills in the walking and transfer defaults.
func DefaultConfig(source string) Config {
	return Config{
		GtfsSource: source,
		Walk:       geo.DefaultWalkTimeConfig(),
		Transfer:   transfer.DefaultConfig(),
	}
}
