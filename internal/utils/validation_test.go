package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("stop_1"))
	assert.NoError(t, ValidateID("agency:route.7-b"))
	assert.Error(t, ValidateID(""))
	assert.Error(t, ValidateID("bad id"))
	assert.Error(t, ValidateID("<script>"))
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateLatitude(59.33))
	assert.Error(t, ValidateLatitude(91))
	assert.Error(t, ValidateLatitude(-90.5))

	assert.NoError(t, ValidateLongitude(18.06))
	assert.Error(t, ValidateLongitude(-180.1))
	assert.Error(t, ValidateLongitude(181))
}

func TestValidateRadiusKm(t *testing.T) {
	assert.NoError(t, ValidateRadiusKm(0))
	assert.NoError(t, ValidateRadiusKm(1.5))
	assert.Error(t, ValidateRadiusKm(-0.1))
	assert.Error(t, ValidateRadiusKm(25))
}
