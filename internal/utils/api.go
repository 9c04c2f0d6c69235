// Package utils holds small request-parsing and validation helpers shared
// by the HTTP handlers.
package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ParseFloatParam parses a float query parameter, accumulating any problem
// in fieldErrors under the parameter name. A missing parameter yields zero
// without an error.
func ParseFloatParam(params url.Values, key string, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return 0, fieldErrors
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
	}
	return f, fieldErrors
}

// ParseTimeParam parses an RFC 3339 departure instant, defaulting to now
// when the parameter is absent.
func ParseTimeParam(params url.Values, key string, fieldErrors map[string][]string) (time.Time, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return time.Now(), fieldErrors
	}

	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key],
			fmt.Sprintf("Invalid field value for field %q: expected RFC 3339.", key))
	}
	return t, fieldErrors
}
