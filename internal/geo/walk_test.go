package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLinearWalkTimeRejectsNonPositiveConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  WalkTimeConfig
	}{
		{"zero speed", WalkTimeConfig{SpeedKmh: 0, Scale: 1}},
		{"negative speed", WalkTimeConfig{SpeedKmh: -5, Scale: 1}},
		{"zero scale", WalkTimeConfig{SpeedKmh: 5, Scale: 0}},
		{"negative scale", WalkTimeConfig{SpeedKmh: 5, Scale: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLinearWalkTime(tc.cfg)
			assert.ErrorIs(t, err, ErrNonPositive)
		})
	}
}

func TestWalkRoundsUpToWholeSeconds(t *testing.T) {
	walk, err := NewLinearWalkTime(WalkTimeConfig{SpeedKmh: 5, Scale: 1})
	require.NoError(t, err)

	// 0.111 km at 5 km/h is 79.92 seconds of walking.
	assert.Equal(t, 80*time.Second, walk.Walk(0.111))
	assert.Equal(t, time.Duration(0), walk.Walk(0))
}

func TestWalkAppliesScaleAfterRounding(t *testing.T) {
	walk, err := NewLinearWalkTime(WalkTimeConfig{SpeedKmh: 5, Scale: 1.5})
	require.NoError(t, err)

	// 80 seconds unscaled, then 80 * 1.5 = 120.
	assert.Equal(t, 120*time.Second, walk.Walk(0.111))
}

func TestWalkBetweenUsesHaversineDistance(t *testing.T) {
	walk, err := NewLinearWalkTime(DefaultWalkTimeConfig())
	require.NoError(t, err)

	// 0.001 degrees of longitude on the equator is about 111.2 m, which is
	// 80.06 seconds at 5 km/h and rounds up to 81.
	assert.Equal(t, 81*time.Second, walk.WalkBetween(0, 0, 0, 0.001))
	assert.Equal(t, time.Duration(0), walk.WalkBetween(10, 20, 10, 20))
}

func TestHaversineKm(t *testing.T) {
	// One degree of longitude on the equator.
	assert.InDelta(t, 111.195, HaversineKm(0, 0, 0, 1), 0.01)
	assert.Zero(t, HaversineKm(59.33, 18.06, 59.33, 18.06))
	// Symmetric.
	assert.Equal(t, HaversineKm(1, 2, 3, 4), HaversineKm(3, 4, 1, 2))
}
