package main

import (
	"net/http"

	"raptor.opentransit.org/internal/logging"
)

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	app.sendResponse(w, r, status, envelope{"error": message})
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	logger.Error("internal server error", "error", err, "method", r.Method, "path", r.URL.Path)
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (app *application) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	app.errorResponse(w, r, http.StatusBadRequest, fieldErrors)
}
