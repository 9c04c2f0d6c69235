// Package gtfs loads a GTFS feed and assembles the immutable planning
// structures from it: timetable, spatial index, transfer graph and router.
package gtfs

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"raptor.opentransit.org/internal/feed"
	"raptor.opentransit.org/internal/geo"
	"raptor.opentransit.org/internal/logging"
	"raptor.opentransit.org/internal/raptor"
	"raptor.opentransit.org/internal/timetable"
	"raptor.opentransit.org/internal/transfer"
)

// Manager owns the structures built from one GTFS feed. Everything it
// exposes is immutable and safe to share across concurrent requests.
type Manager struct {
	config    Config
	timetable *timetable.Timetable
	spatial   *geo.SpatialIndex
	transfers *transfer.Graph
	router    *raptor.Router
	builtAt   time.Time
}

// InitManager loads the configured feed and builds the planner. The source
// can be either a URL or a local file path.
func InitManager(config Config, logger *slog.Logger) (*Manager, error) {
	isLocalFile := !strings.HasPrefix(config.GtfsSource, "http://") &&
		!strings.HasPrefix(config.GtfsSource, "https://")

	staticData, err := loadGTFSData(config.GtfsSource, isLocalFile)
	if err != nil {
		return nil, err
	}

	return buildManager(config, feed.FromStatic(staticData), logger)
}

// InitManagerFromFeed assembles the planner from already-parsed tables.
// Used by tests and by callers with a non-zip feed source.
func InitManagerFromFeed(config Config, f *feed.Feed, logger *slog.Logger) (*Manager, error) {
	return buildManager(config, f, logger)
}

func buildManager(config Config, f *feed.Feed, logger *slog.Logger) (*Manager, error) {
	start := time.Now()

	tt, err := timetable.Build(f, timetable.BuildOptions{
		FromDate: config.FromDate,
		ToDate:   config.ToDate,
	})
	if err != nil {
		return nil, fmt.Errorf("error building timetable: %w", err)
	}

	walk, err := geo.NewLinearWalkTime(config.Walk)
	if err != nil {
		return nil, fmt.Errorf("error building walk-time model: %w", err)
	}

	spatial := geo.NewSpatialIndex(tt.Stops)
	transfers := transfer.BuildGraph(tt, spatial, walk, config.Transfer)

	manager := &Manager{
		config:    config,
		timetable: tt,
		spatial:   spatial,
		transfers: transfers,
		router:    raptor.New(tt, transfers),
		builtAt:   time.Now(),
	}

	logging.LogOperation(logger, "planner built",
		slog.Int("stops", len(tt.Stops)),
		slog.Int("stations", len(tt.Stations)),
		slog.Int("routes", len(tt.Routes)),
		slog.Int("agencies", len(tt.Agencies)),
		slog.Duration("duration", time.Since(start)))

	return manager, nil
}

// Timetable returns the immutable schedule.
func (m *Manager) Timetable() *timetable.Timetable {
	return m.timetable
}

// Spatial returns the stop radius index.
func (m *Manager) Spatial() *geo.SpatialIndex {
	return m.spatial
}

// Transfers returns the on-foot transfer graph.
func (m *Manager) Transfers() *transfer.Graph {
	return m.transfers
}

// Router returns the journey router.
func (m *Manager) Router() *raptor.Router {
	return m.router
}

// BuiltAt returns when the planner finished building.
func (m *Manager) BuiltAt() time.Time {
	return m.builtAt
}
