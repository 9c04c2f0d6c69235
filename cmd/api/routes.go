package main

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"raptor.opentransit.org/internal/logging"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/api/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/journey", app.journeyHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/stops/:id", app.stopHandler)
	router.HandlerFunc(http.MethodGet, "/api/v1/stops-for-location", app.stopsForLocationHandler)

	return app.logRequests(router)
}

// statusRecorder captures the status code written by a handler so the
// request log can include it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (app *application) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		r = r.WithContext(logging.WithLogger(r.Context(), app.Logger))
		next.ServeHTTP(rec, r)
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		logging.LogHTTPRequest(app.Logger, r.Method, r.URL.Path, rec.status, durationMs)
	})
}
