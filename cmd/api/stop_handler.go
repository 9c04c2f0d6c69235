package main

import (
	"net/http"

	"raptor.opentransit.org/internal/timetable"
	"raptor.opentransit.org/internal/utils"
)

type stationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type transferResponse struct {
	To              stopReference `json:"to"`
	DurationSeconds int64         `json:"durationSeconds"`
}

type routeReference struct {
	ID        string `json:"id"`
	ShortName string `json:"shortName,omitempty"`
	LongName  string `json:"longName,omitempty"`
}

type stopDetailResponse struct {
	stopReference
	PlatformCode string             `json:"platformCode,omitempty"`
	Station      *stationResponse   `json:"station,omitempty"`
	Routes       []routeReference   `json:"routes"`
	Transfers    []transferResponse `json:"transfers"`
}

func (app *application) stopHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		app.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	tt := app.GtfsManager.Timetable()
	idx, ok := tt.StopByID(id)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}
	stop := tt.Stops[idx]

	detail := stopDetailResponse{
		stopReference: newStopReference(tt, idx),
		PlatformCode:  stop.PlatformCode,
		Routes:        []routeReference{},
		Transfers:     []transferResponse{},
	}
	if stop.Station != timetable.None {
		station := tt.Stations[stop.Station]
		detail.Station = &stationResponse{ID: station.ID, Name: station.Name}
	}

	seen := make(map[timetable.RouteIdx]bool)
	for _, rs := range tt.RoutesServing(idx) {
		if seen[rs.Route] {
			continue
		}
		seen[rs.Route] = true
		route := tt.Routes[rs.Route]
		detail.Routes = append(detail.Routes, routeReference{
			ID:        route.ID,
			ShortName: route.ShortName,
			LongName:  route.LongName,
		})
	}

	for _, edge := range app.GtfsManager.Transfers().From(idx) {
		detail.Transfers = append(detail.Transfers, transferResponse{
			To:              newStopReference(tt, edge.To),
			DurationSeconds: int64(edge.Duration.Seconds()),
		})
	}

	app.sendResponse(w, r, http.StatusOK, envelope{"stop": detail})
}
