package app

import (
	"log/slog"

	"raptor.opentransit.org/internal/gtfs"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware: the configuration, a logger and the planner built from
// the GTFS feed.
type Application struct {
	Config      Config
	GtfsConfig  gtfs.Config
	Logger      *slog.Logger
	GtfsManager *gtfs.Manager
}

// Config holds all the configuration settings for our Application.
// For now this is the network port that we want the server to listen on,
// and the name of the current operating environment for the Application
// (development, staging, production, etc.). We read these in from
// command-line flags when the Application starts.
type Config struct {
	Port int
	Env  string
}
