package utils

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloatParam(t *testing.T) {
	params := url.Values{"lat": {"59.33"}, "bad": {"abc"}}

	lat, fieldErrors := ParseFloatParam(params, "lat", nil)
	assert.Equal(t, 59.33, lat)
	assert.Empty(t, fieldErrors)

	_, fieldErrors = ParseFloatParam(params, "bad", fieldErrors)
	assert.Contains(t, fieldErrors, "bad")

	missing, fieldErrors := ParseFloatParam(params, "absent", fieldErrors)
	assert.Zero(t, missing)
	assert.NotContains(t, fieldErrors, "absent")
}

func TestParseTimeParam(t *testing.T) {
	params := url.Values{"departure": {"2026-03-02T09:00:00Z"}, "bad": {"yesterday"}}

	departure, fieldErrors := ParseTimeParam(params, "departure", nil)
	require.Empty(t, fieldErrors)
	assert.True(t, departure.Equal(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)))

	_, fieldErrors = ParseTimeParam(params, "bad", fieldErrors)
	assert.Contains(t, fieldErrors, "bad")
}

func TestParseTimeParamDefaultsToNow(t *testing.T) {
	before := time.Now()
	departure, fieldErrors := ParseTimeParam(url.Values{}, "departure", nil)
	after := time.Now()

	assert.Empty(t, fieldErrors)
	assert.False(t, departure.Before(before))
	assert.False(t, departure.After(after))
}
