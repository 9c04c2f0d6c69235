// Package transfer builds and serves the on-foot transfer graph: fixed-cost
// moves between stops sharing a station plus walking edges to geographic
// neighbours.
package transfer

import (
	"time"

	"raptor.opentransit.org/internal/geo"
	"raptor.opentransit.org/internal/timetable"
)

// Config controls transfer-graph construction.
type Config struct {
	// MaxRadiusKm bounds the nearest-neighbour search for walking edges.
	// A non-positive radius disables on-foot edges entirely.
	MaxRadiusKm float64
	// ExitStationDuration is added once to every inter-station walking edge
	// to account for leaving one station and entering another.
	ExitStationDuration time.Duration
	// InStationTransferDuration is the fixed cost of moving between stops
	// that share a station.
	InStationTransferDuration time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxRadiusKm:               1.0,
		ExitStationDuration:       2 * time.Minute,
		InStationTransferDuration: time.Minute,
	}
}

// Edge is a directed transfer to a stop with a fixed duration.
type Edge struct {
	To       timetable.StopIdx
	Duration time.Duration
}

// Graph stores the outbound transfers of every stop. It is immutable after
// construction and shared read-only across queries.
type Graph struct {
	edges [][]Edge
}

// BuildGraph constructs the transfer graph in two passes. Same-station edges
// come first and take precedence: a walking edge is never emitted towards a
// stop that already has an in-station edge, so the fixed in-station duration
// is never overridden by a coordinate-derived one.
func BuildGraph(tt *timetable.Timetable, spatial *geo.SpatialIndex,
	walk geo.WalkTimeModel, cfg Config) *Graph {
	g := &Graph{edges: make([][]Edge, len(tt.Stops))}

	for stop := range tt.Stops {
		for _, sibling := range tt.Siblings(timetable.StopIdx(stop)) {
			g.edges[stop] = append(g.edges[stop], Edge{
				To:       sibling,
				Duration: cfg.InStationTransferDuration,
			})
		}
	}

	if cfg.MaxRadiusKm <= 0 {
		return g
	}
	for stop := range tt.Stops {
		existing := make(map[timetable.StopIdx]bool, len(g.edges[stop]))
		for _, edge := range g.edges[stop] {
			existing[edge.To] = true
		}
		for _, neighbor := range spatial.WithinStop(timetable.StopIdx(stop), cfg.MaxRadiusKm) {
			if existing[neighbor.Stop] {
				continue
			}
			g.edges[stop] = append(g.edges[stop], Edge{
				To:       neighbor.Stop,
				Duration: walk.Walk(neighbor.DistanceKm) + cfg.ExitStationDuration,
			})
		}
	}
	return g
}

// From returns the outbound transfers of a stop. Stops without transfers
// yield an empty slice. The slice is shared; callers must not modify it.
func (g *Graph) From(stop timetable.StopIdx) []Edge {
	return g.edges[stop]
}
