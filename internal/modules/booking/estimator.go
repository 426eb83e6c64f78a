package booking

// Pricing constants for the booking form estimate. The form has no distance
// input, so a fixed nominal distance stands in until a route is known.
const (
	formBaseRate       = 100.0
	formRatePerTonne   = 15.0
	formRatePerKm      = 0.8
	formNominalRouteKm = 500.0
)

// Pricing constants for a quoted trip with a known distance.
const (
	tripBaseRate     = 100.0
	tripRatePerTonne = 10.0
	tripRatePerKm    = 0.75
)

// FormEstimate prices a booking straight off the form, before any route
// distance is known.
func FormEstimate(loadTonnes float64) float64 {
	return formBaseRate + formRatePerTonne*loadTonnes + formRatePerKm*formNominalRouteKm
}

// TripRate prices a trip once the route distance is known.
func TripRate(loadTonnes, distanceKm float64) float64 {
	return tripBaseRate + tripRatePerTonne*loadTonnes + tripRatePerKm*distanceKm
}

// Estimate picks the right formula: the trip rate when a distance is given,
// the form estimate otherwise.
func Estimate(loadTonnes float64, distanceKm *float64) float64 {
	if distanceKm != nil {
		return TripRate(loadTonnes, *distanceKm)
	}
	return FormEstimate(loadTonnes)
}
