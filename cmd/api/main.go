package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"raptor.opentransit.org/internal/app"
	"raptor.opentransit.org/internal/feed"
	"raptor.opentransit.org/internal/gtfs"
	"raptor.opentransit.org/internal/logging"
)

// application wraps the shared dependency container with the HTTP handlers
// defined in this package.
type application struct {
	*app.Application
}

func main() {
	var cfg app.Config
	var gtfsSource string
	var fromDate, toDate string
	var walkSpeed, walkScale, maxRadiusKm float64

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&cfg.Env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&gtfsSource, "gtfs-source", "", "URL or path of a static GTFS zip file")
	flag.StringVar(&fromDate, "from-date", "", "First service date to load (YYYY-MM-DD)")
	flag.StringVar(&toDate, "to-date", "", "Last service date to load (YYYY-MM-DD)")
	flag.Float64Var(&walkSpeed, "walk-speed", 5, "Walking speed in km/h")
	flag.Float64Var(&walkScale, "walk-scale", 1, "Scaling factor applied to walking times")
	flag.Float64Var(&maxRadiusKm, "transfer-radius", 1, "Maximum on-foot transfer radius in km")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	if gtfsSource == "" {
		logger.Error("missing required flag -gtfs-source")
		os.Exit(1)
	}

	gtfsConfig := gtfs.DefaultConfig(gtfsSource)
	gtfsConfig.Walk.SpeedKmh = walkSpeed
	gtfsConfig.Walk.Scale = walkScale
	gtfsConfig.Transfer.MaxRadiusKm = maxRadiusKm
	var err error
	if gtfsConfig.FromDate, err = parseDateFlag(fromDate); err != nil {
		logger.Error("invalid -from-date", "error", err)
		os.Exit(1)
	}
	if gtfsConfig.ToDate, err = parseDateFlag(toDate); err != nil {
		logger.Error("invalid -to-date", "error", err)
		os.Exit(1)
	}

	gtfsManager, err := gtfs.InitManager(gtfsConfig, logger)
	if err != nil {
		logger.Error("failed to initialize GTFS manager", "error", err)
		os.Exit(1)
	}

	api := &application{
		Application: &app.Application{
			Config:      cfg,
			GtfsConfig:  gtfsConfig,
			Logger:      logger,
			GtfsManager: gtfsManager,
		},
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return feed.DateOnly(t), nil
}
