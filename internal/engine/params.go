package engine

import "time"

// ScanParams contains the tunable thresholds for trip and place-stop
// detection.
type ScanParams struct {
	// MaxTripRadiusKm is the largest day-to-day representative-coordinate
	// distance that still continues an open trip.
	MaxTripRadiusKm float64

	// MaxGapDays is the largest number of empty calendar days between two
	// qualifying days that still continues an open trip. Consecutive days
	// have a gap of zero.
	MaxGapDays int

	// StopRadiusMeters is the cluster radius for place stops within a day.
	StopRadiusMeters float64

	// GeocodeTimeout bounds each reverse-geocode lookup.
	GeocodeTimeout time.Duration
}

// DefaultScanParams returns sensible defaults.
func DefaultScanParams() ScanParams {
	return ScanParams{
		MaxTripRadiusKm:  150.0,
		MaxGapDays:       2,
		StopRadiusMeters: 300.0,
		GeocodeTimeout:   5 * time.Second,
	}
}
