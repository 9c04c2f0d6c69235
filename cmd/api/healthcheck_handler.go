package main

import (
	"net/http"
)

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	tt := app.GtfsManager.Timetable()
	app.sendResponse(w, r, http.StatusOK, envelope{
		"status": "available",
		"system_info": map[string]any{
			"environment": app.Config.Env,
			"built_at":    app.GtfsManager.BuiltAt(),
			"stops":       len(tt.Stops),
			"stations":    len(tt.Stations),
			"routes":      len(tt.Routes),
			"agencies":    len(tt.Agencies),
		},
	})
}
