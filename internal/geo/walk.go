package geo

import (
	"errors"
	"math"
	"time"
)

// ErrNonPositive rejects walk-time configurations with a non-positive speed
// or scale.
var ErrNonPositive = errors.New("walking speed and scale must be positive")

// WalkTimeModel converts distances into walking durations. Implementations
// must be safe for concurrent use.
type WalkTimeModel interface {
	// WalkBetween estimates the time to walk between two coordinates given
	// in decimal degrees.
	WalkBetween(lat1, lon1, lat2, lon2 float64) time.Duration
	// Walk estimates the time to walk the given distance in kilometres.
	Walk(distanceKm float64) time.Duration
}

// WalkTimeConfig parameterises the linear model. Both fields must be
// positive.
type WalkTimeConfig struct {
	SpeedKmh float64
	Scale    float64
}

// DefaultWalkTimeConfig is an average walking pace with no scaling.
func DefaultWalkTimeConfig() WalkTimeConfig {
	return WalkTimeConfig{SpeedKmh: 5, Scale: 1}
}

// LinearWalkTime assumes a straight-line path at constant speed. Distances
// between coordinates use the haversine formula.
type LinearWalkTime struct {
	speedKmh float64
	scale    float64
}

// NewLinearWalkTime validates the configuration and builds the model.
func NewLinearWalkTime(cfg WalkTimeConfig) (*LinearWalkTime, error) {
	if cfg.SpeedKmh <= 0 || cfg.Scale <= 0 {
		return nil, ErrNonPositive
	}
	return &LinearWalkTime{speedKmh: cfg.SpeedKmh, scale: cfg.Scale}, nil
}

func (w *LinearWalkTime) WalkBetween(lat1, lon1, lat2, lon2 float64) time.Duration {
	return w.Walk(HaversineKm(lat1, lon1, lat2, lon2))
}

// Walk rounds up to whole seconds so a transfer is never optimistic.
func (w *LinearWalkTime) Walk(distanceKm float64) time.Duration {
	seconds := math.Ceil(3600 * distanceKm / w.speedKmh)
	seconds = math.Ceil(seconds * w.scale)
	return time.Duration(seconds) * time.Second
}

// HaversineKm returns the great-circle distance between two coordinates in
// decimal degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}
