package main

import (
	"net/http"

	"raptor.opentransit.org/internal/utils"
)

const defaultSearchRadiusKm = 0.5

type nearbyStopResponse struct {
	stopReference
	DistanceKm float64 `json:"distanceKm"`
}

func (app *application) stopsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, fieldErrors := utils.ParseFloatParam(query, "lat", nil)
	lon, fieldErrors := utils.ParseFloatParam(query, "lon", fieldErrors)
	radiusKm, fieldErrors := utils.ParseFloatParam(query, "radius", fieldErrors)
	if radiusKm == 0 {
		radiusKm = defaultSearchRadiusKm
	}

	if err := utils.ValidateLatitude(lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}
	if err := utils.ValidateLongitude(lon); err != nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
	}
	if err := utils.ValidateRadiusKm(radiusKm); err != nil {
		fieldErrors["radius"] = append(fieldErrors["radius"], err.Error())
	}
	if len(fieldErrors) > 0 {
		app.validationErrorResponse(w, r, fieldErrors)
		return
	}

	tt := app.GtfsManager.Timetable()
	stops := []nearbyStopResponse{}
	for _, neighbor := range app.GtfsManager.Spatial().WithinPoint(lat, lon, radiusKm) {
		stops = append(stops, nearbyStopResponse{
			stopReference: newStopReference(tt, neighbor.Stop),
			DistanceKm:    neighbor.DistanceKm,
		})
	}

	app.sendResponse(w, r, http.StatusOK, envelope{"stops": stops})
}
