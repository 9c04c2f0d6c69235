package main

import (
	"encoding/json"
	"net/http"
	"time"

	"raptor.opentransit.org/internal/raptor"
	"raptor.opentransit.org/internal/timetable"
)

// envelope wraps every response body under a named top-level key.
type envelope map[string]any

func (app *application) sendResponse(w http.ResponseWriter, r *http.Request, status int, data envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		app.Logger.Error("failed to encode response", "error", err)
	}
}

// stopReference identifies a stop in responses without repeating its full
// detail record.
type stopReference struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func newStopReference(tt *timetable.Timetable, idx timetable.StopIdx) stopReference {
	stop := tt.Stops[idx]
	return stopReference{ID: stop.ID, Name: stop.Name, Lat: stop.Lat, Lon: stop.Lon}
}

type stopTimeResponse struct {
	Stop      stopReference `json:"stop"`
	Arrival   time.Time     `json:"arrival"`
	Departure time.Time     `json:"departure"`
}

type legResponse struct {
	Mode      string        `json:"mode"`
	From      stopReference `json:"from"`
	To        stopReference `json:"to"`
	Departure time.Time     `json:"departure"`
	Arrival   time.Time     `json:"arrival"`

	RouteID        string `json:"routeId,omitempty"`
	RouteShortName string `json:"routeShortName,omitempty"`
	TripID         string `json:"tripId,omitempty"`

	StopTimes []stopTimeResponse `json:"stopTimes,omitempty"`

	WalkDurationSeconds int64 `json:"walkDurationSeconds,omitempty"`
}

type journeyResponse struct {
	Legs      []legResponse `json:"legs"`
	Arrival   *time.Time    `json:"arrival,omitempty"`
	Boardings int           `json:"boardings"`
}

func newJourneyResponse(tt *timetable.Timetable, journey raptor.Journey) journeyResponse {
	resp := journeyResponse{
		Legs:      make([]legResponse, 0, len(journey.Legs)),
		Boardings: journey.Boardings(),
	}
	if arrival, ok := journey.Arrival(); ok {
		resp.Arrival = &arrival
	}

	for _, leg := range journey.Legs {
		lr := legResponse{
			From:      newStopReference(tt, leg.From),
			To:        newStopReference(tt, leg.To),
			Departure: leg.Departure,
			Arrival:   leg.Arrival,
		}
		if leg.IsWalk() {
			lr.Mode = "walk"
			lr.WalkDurationSeconds = int64(leg.WalkDuration.Seconds())
		} else {
			lr.Mode = "transit"
			route := tt.Routes[leg.Route]
			lr.RouteID = route.ID
			lr.RouteShortName = route.ShortName
			lr.TripID = route.Trips[leg.Trip].ID
			for _, st := range leg.StopTimes(tt) {
				lr.StopTimes = append(lr.StopTimes, stopTimeResponse{
					Stop:      newStopReference(tt, st.Stop),
					Arrival:   st.Arrival,
					Departure: st.Departure,
				})
			}
		}
		resp.Legs = append(resp.Legs, lr)
	}
	return resp
}
