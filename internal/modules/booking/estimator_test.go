package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormEstimate(t *testing.T) {
	// 100 + 15*5.5 + 0.8*500
	assert.InDelta(t, 582.5, FormEstimate(5.5), 1e-9)
}

func TestTripRate(t *testing.T) {
	// 100 + 10*8 + 0.75*320
	assert.InDelta(t, 420.0, TripRate(8, 320), 1e-9)
}

func TestEstimatePicksFormulaByDistance(t *testing.T) {
	assert.InDelta(t, FormEstimate(5.5), Estimate(5.5, nil), 1e-9)

	distance := 320.0
	assert.InDelta(t, TripRate(8, 320), Estimate(8, &distance), 1e-9)
}
