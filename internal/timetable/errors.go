package timetable

import "errors"

// Build errors. All of them abort the build and surface to the caller;
// nothing is recovered internally.
var (
	ErrUnknownStopRef    = errors.New("reference to unknown stop id")
	ErrUnknownServiceRef = errors.New("reference to unknown service id")
	ErrUnknownRouteRef   = errors.New("reference to unknown route id")
	ErrDuplicateService  = errors.New("duplicate service id in calendar")
	ErrEmptyTrip         = errors.New("trip has no stop times")
	ErrMissingAgency     = errors.New("feed has no agency records")
	ErrBadTimezone       = errors.New("agency has an unresolvable timezone")
)
