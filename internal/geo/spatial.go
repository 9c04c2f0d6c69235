// Package geo provides the spatial primitives behind on-foot transfers: a
// kd-tree radius index over stops and the walking-time model.
package geo

import (
	"math"
	"sort"

	"github.com/kyroy/kdtree"
	"github.com/kyroy/kdtree/kdrange"

	"raptor.opentransit.org/internal/timetable"
)

// EarthRadiusKm is the sphere radius used for both the cartesian projection
// and the haversine distance.
const EarthRadiusKm = 6371.0

// distanceEpsilonKm absorbs floating-point noise at the radius boundary.
const distanceEpsilonKm = 1e-9

// Neighbor is one radius-query result. DistanceKm is the straight-line
// chord distance, which slightly under-approximates the great-circle
// distance at the radii used for transfers.
type Neighbor struct {
	Stop       timetable.StopIdx
	DistanceKm float64
}

type stopPoint struct {
	x, y, z float64
	stop    timetable.StopIdx
}

func (p *stopPoint) Dimensions() int { return 3 }

func (p *stopPoint) Dimension(i int) float64 {
	switch i {
	case 0:
		return p.x
	case 1:
		return p.y
	default:
		return p.z
	}
}

// SpatialIndex answers radius queries over the stop arena. Build it once;
// it is immutable and safe for concurrent readers.
type SpatialIndex struct {
	tree   *kdtree.KDTree
	points []*stopPoint
}

// NewSpatialIndex indexes the given stops by their coordinates projected
// onto a 3-D cartesian sphere.
func NewSpatialIndex(stops []timetable.Stop) *SpatialIndex {
	points := make([]*stopPoint, len(stops))
	treePoints := make([]kdtree.Point, len(stops))
	for i := range stops {
		x, y, z := cartesian(stops[i].Lat, stops[i].Lon)
		points[i] = &stopPoint{x: x, y: y, z: z, stop: timetable.StopIdx(i)}
		treePoints[i] = points[i]
	}
	return &SpatialIndex{tree: kdtree.New(treePoints), points: points}
}

// WithinPoint returns every stop within radiusKm of the given coordinate,
// sorted by distance then stop index. A stop coinciding with the coordinate
// is included at distance zero.
func (s *SpatialIndex) WithinPoint(lat, lon, radiusKm float64) []Neighbor {
	x, y, z := cartesian(lat, lon)
	return s.search(x, y, z, radiusKm, timetable.None)
}

// WithinStop returns every other stop within radiusKm of the given stop.
// The stop itself is never part of the result.
func (s *SpatialIndex) WithinStop(stop timetable.StopIdx, radiusKm float64) []Neighbor {
	p := s.points[stop]
	return s.search(p.x, p.y, p.z, radiusKm, stop)
}

func (s *SpatialIndex) search(x, y, z, radiusKm float64, exclude timetable.StopIdx) []Neighbor {
	if len(s.points) == 0 || radiusKm < 0 {
		return nil
	}
	found := s.tree.RangeSearch(kdrange.New(
		x-radiusKm, x+radiusKm,
		y-radiusKm, y+radiusKm,
		z-radiusKm, z+radiusKm,
	))
	var neighbors []Neighbor
	for _, raw := range found {
		p := raw.(*stopPoint)
		if p.stop == exclude {
			continue
		}
		d := math.Sqrt((p.x-x)*(p.x-x) + (p.y-y)*(p.y-y) + (p.z-z)*(p.z-z))
		if d <= radiusKm+distanceEpsilonKm {
			neighbors = append(neighbors, Neighbor{Stop: p.stop, DistanceKm: d})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].DistanceKm == neighbors[j].DistanceKm {
			return neighbors[i].Stop < neighbors[j].Stop
		}
		return neighbors[i].DistanceKm < neighbors[j].DistanceKm
	})
	return neighbors
}

func cartesian(lat, lon float64) (x, y, z float64) {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180
	x = EarthRadiusKm * math.Cos(phi) * math.Cos(lambda)
	y = EarthRadiusKm * math.Cos(phi) * math.Sin(lambda)
	z = EarthRadiusKm * math.Sin(phi)
	return x, y, z
}
