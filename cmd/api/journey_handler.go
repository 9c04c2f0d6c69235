package main

import (
	"net/http"

	"raptor.opentransit.org/internal/utils"
)

func (app *application) journeyHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	fromID := query.Get("from")
	toID := query.Get("to")

	fieldErrors := make(map[string][]string)
	if err := utils.ValidateID(fromID); err != nil {
		fieldErrors["from"] = append(fieldErrors["from"], err.Error())
	}
	if err := utils.ValidateID(toID); err != nil {
		fieldErrors["to"] = append(fieldErrors["to"], err.Error())
	}
	departure, fieldErrors := utils.ParseTimeParam(query, "departure", fieldErrors)
	if len(fieldErrors) > 0 {
		app.validationErrorResponse(w, r, fieldErrors)
		return
	}

	tt := app.GtfsManager.Timetable()
	origin, ok := tt.StopByID(fromID)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}
	destination, ok := tt.StopByID(toID)
	if !ok {
		app.notFoundResponse(w, r)
		return
	}

	journey, err := app.GtfsManager.Router().Route(origin, destination, departure)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sendResponse(w, r, http.StatusOK, envelope{"journey": newJourneyResponse(tt, journey)})
}
