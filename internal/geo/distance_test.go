package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	// Same point.
	assert.Equal(t, 0.0, Distance(14.6349, -90.5069, 14.6349, -90.5069))

	// Guatemala City to Antigua Guatemala, roughly 25 km.
	d := Distance(14.6349, -90.5069, 14.5586, -90.7295)
	assert.Greater(t, d, 20.0)
	assert.Less(t, d, 30.0)

	// Rounded to two decimals.
	assert.Equal(t, d, math.Round(d*100)/100)
}

func TestDistanceInvalidCoordinates(t *testing.T) {
	assert.True(t, math.IsInf(Distance(91, 0, 0, 0), 1))
	assert.True(t, math.IsInf(Distance(0, 0, 0, -181), 1))
	assert.True(t, math.IsInf(Distance(math.NaN(), 0, 0, 0), 1))
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(0, 0))
	assert.True(t, ValidCoordinate(-90, 180))
	assert.False(t, ValidCoordinate(90.1, 0))
	assert.False(t, ValidCoordinate(0, 180.5))
	assert.False(t, ValidCoordinate(math.NaN(), 0))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "N/A", FormatDistance(math.Inf(1)))
	assert.Equal(t, "N/A", FormatDistance(math.NaN()))
	assert.Equal(t, "N/A", FormatDistance(-1))
	assert.Equal(t, "850 m", FormatDistance(0.85))
	assert.Equal(t, "90 m", FormatDistance(0.09))
	assert.Equal(t, "1.2 km", FormatDistance(1.2))
	assert.Equal(t, "25.0 km", FormatDistance(25))
}
