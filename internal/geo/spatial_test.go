package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raptor.opentransit.org/internal/timetable"
)

func testStops() []timetable.Stop {
	return []timetable.Stop{
		{ID: "a", Lat: 0, Lon: 0},
		{ID: "b", Lat: 0, Lon: 0},       // coincides with a
		{ID: "c", Lat: 0, Lon: 0.001},   // ~111 m east of a
		{ID: "d", Lat: 0.005, Lon: 0},   // ~556 m north of a
		{ID: "e", Lat: 0.05, Lon: 0.05}, // several km away
	}
}

func TestWithinStopExcludesItself(t *testing.T) {
	index := NewSpatialIndex(testStops())

	neighbors := index.WithinStop(0, 0.2)
	require.Len(t, neighbors, 2)
	assert.Equal(t, timetable.StopIdx(1), neighbors[0].Stop)
	assert.Zero(t, neighbors[0].DistanceKm)
	assert.Equal(t, timetable.StopIdx(2), neighbors[1].Stop)
}

func TestWithinPointIncludesCoincidentStops(t *testing.T) {
	index := NewSpatialIndex(testStops())

	neighbors := index.WithinPoint(0, 0, 0.05)
	require.Len(t, neighbors, 2)
	assert.Equal(t, timetable.StopIdx(0), neighbors[0].Stop)
	assert.Equal(t, timetable.StopIdx(1), neighbors[1].Stop)
	assert.Zero(t, neighbors[0].DistanceKm)
	assert.Zero(t, neighbors[1].DistanceKm)
}

func TestWithinPointSortsByDistanceThenIndex(t *testing.T) {
	index := NewSpatialIndex(testStops())

	neighbors := index.WithinPoint(0, 0, 1.0)
	require.Len(t, neighbors, 4)
	for i := 1; i < len(neighbors); i++ {
		prev, cur := neighbors[i-1], neighbors[i]
		less := prev.DistanceKm < cur.DistanceKm ||
			(prev.DistanceKm == cur.DistanceKm && prev.Stop < cur.Stop)
		assert.True(t, less, "result %d out of order", i)
	}
	assert.Equal(t, timetable.StopIdx(3), neighbors[3].Stop)
}

func TestWithinPointMatchesLinearScan(t *testing.T) {
	stops := make([]timetable.Stop, 0, 25)
	for i := 0; i < 25; i++ {
		stops = append(stops, timetable.Stop{
			Lat: float64(i%5) * 0.002,
			Lon: float64(i/5) * 0.003,
		})
	}
	index := NewSpatialIndex(stops)

	const radiusKm = 0.5
	qx, qy, qz := cartesian(0.004, 0.006)

	want := make(map[timetable.StopIdx]bool)
	for i, stop := range stops {
		x, y, z := cartesian(stop.Lat, stop.Lon)
		d := math.Sqrt((x-qx)*(x-qx) + (y-qy)*(y-qy) + (z-qz)*(z-qz))
		if d <= radiusKm+distanceEpsilonKm {
			want[timetable.StopIdx(i)] = true
		}
	}

	got := make(map[timetable.StopIdx]bool)
	for _, neighbor := range index.WithinPoint(0.004, 0.006, radiusKm) {
		got[neighbor.Stop] = true
	}
	assert.Equal(t, want, got)
}

func TestWithinPointEmptyIndexAndNegativeRadius(t *testing.T) {
	empty := NewSpatialIndex(nil)
	assert.Empty(t, empty.WithinPoint(0, 0, 1))

	index := NewSpatialIndex(testStops())
	assert.Empty(t, index.WithinPoint(0, 0, -1))
}
