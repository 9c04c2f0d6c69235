package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"raptor.opentransit.org/internal/app"
	"raptor.opentransit.org/internal/feed"
	"raptor.opentransit.org/internal/gtfs"
	"raptor.opentransit.org/internal/logging"
)

// testFeed builds a small in-memory network: a two-platform station
// "Central", two standalone stops, and one route running across them on
// 2026-03-02.
func testFeed() *feed.Feed {
	everyDay := [7]bool{true, true, true, true, true, true, true}
	return &feed.Feed{
		Agencies: []feed.Agency{
			{ID: "MET", Name: "Metro", URL: "https://metro.example", Timezone: "UTC"},
		},
		Stops: []feed.StopRecord{
			{ID: "CEN", Name: "Central", LocationType: feed.Station, Lat: 59.3300, Lon: 18.0600},
			{ID: "CEN-1", Name: "Central", LocationType: feed.Platform, ParentStation: "CEN", PlatformCode: "1", Lat: 59.3300, Lon: 18.0600},
			{ID: "CEN-2", Name: "Central", LocationType: feed.Platform, ParentStation: "CEN", PlatformCode: "2", Lat: 59.3301, Lon: 18.0601},
			{ID: "MID", Name: "Midtown", LocationType: feed.Platform, Lat: 59.3400, Lon: 18.0700},
			{ID: "END", Name: "Endpoint", LocationType: feed.Platform, Lat: 59.3500, Lon: 18.0800},
		},
		Routes: []feed.RouteRecord{
			{ID: "R1", AgencyID: "MET", ShortName: "1", LongName: "Central - Endpoint"},
		},
		Trips: []feed.TripRecord{
			{ID: "T1", RouteID: "R1", ServiceID: "DAILY"},
		},
		StopTimes: []feed.StopTimeRecord{
			{TripID: "T1", StopSequence: 1, StopID: "CEN-1", Arrival: feed.HMS(8, 0, 0), Departure: feed.HMS(8, 0, 0)},
			{TripID: "T1", StopSequence: 2, StopID: "MID", Arrival: feed.HMS(8, 10, 0), Departure: feed.HMS(8, 11, 0)},
			{TripID: "T1", StopSequence: 3, StopID: "END", Arrival: feed.HMS(8, 20, 0), Departure: feed.HMS(8, 20, 0)},
		},
		Calendars: []feed.Calendar{
			{ServiceID: "DAILY", Weekdays: everyDay, StartDate: feed.Date(2026, time.March, 1), EndDate: feed.Date(2026, time.March, 7)},
		},
	}
}

// createTestApp assembles an application around the in-memory network.
func createTestApp(t *testing.T) *application {
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelError)

	gtfsConfig := gtfs.DefaultConfig("")
	gtfsConfig.FromDate = feed.Date(2026, time.March, 2)
	gtfsConfig.ToDate = feed.Date(2026, time.March, 2)

	gtfsManager, err := gtfs.InitManagerFromFeed(gtfsConfig, testFeed(), logger)
	require.NoError(t, err)

	return &application{
		Application: &app.Application{
			Config:      app.Config{Env: "test"},
			GtfsConfig:  gtfsConfig,
			Logger:      logger,
			GtfsManager: gtfsManager,
		},
	}
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the
// specified endpoint, and returns the response and decoded body.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*http.Response, map[string]any) {
	api := createTestApp(t)
	server := httptest.NewServer(api.routes())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	var body map[string]any
	err = json.NewDecoder(resp.Body).Decode(&body)
	require.NoError(t, err)

	return resp, body
}
