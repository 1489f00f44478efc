package engine

import (
	"context"
	"fmt"

	"github.com/ekarhu/tripsight/internal/models"
	"github.com/ekarhu/tripsight/internal/spatial"
)

// CountryResolver resolves (and memoizes on the bucket) a day's
// representative country. The second return is false when no country
// could be resolved from any source.
type CountryResolver func(day *models.DayBucket) (string, bool)

// segmentState is the segmenter's accumulator: an empty open slice means
// no trip is currently open. Bridge days are never appended, so the last
// element is always the last non-bridge day.
type segmentState struct {
	open []models.DayBucket
}

// SegmentTrips walks day buckets in chronological order and partitions
// them into disjoint trip candidates, recording a reason entry per day.
// Cancellation is checked between per-day iterations.
func SegmentTrips(ctx context.Context, days []models.DayBucket, params ScanParams, resolve CountryResolver) ([]models.TripCandidate, []models.ReasonEntry, error) {
	var (
		state      segmentState
		candidates []models.TripCandidate
		log        []models.ReasonEntry
	)

	for i := range days {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		next, closed, entry := transition(state, days[i], params, resolve)
		state = next
		if closed != nil {
			candidates = append(candidates, *closed)
		}
		log = append(log, entry)
	}

	if len(state.open) > 0 {
		candidates = append(candidates, models.TripCandidate{Days: state.open})
	}

	return candidates, log, nil
}

// transition is the pure per-day step: (state, day) -> (state, optional
// closed candidate, reason entry). Only the resolver touches the outside
// world, and only when the distance pass is inconclusive.
func transition(state segmentState, day models.DayBucket, params ScanParams, resolve CountryResolver) (segmentState, *models.TripCandidate, models.ReasonEntry) {
	if day.IsBridge() {
		return bridgeTransition(state, day, params)
	}

	if len(state.open) == 0 {
		return segmentState{open: []models.DayBucket{day}}, nil,
			reason(day, models.PassOpen, models.DecisionStart, "")
	}

	prev := &state.open[len(state.open)-1]
	gap := calendarGap(prev.Date, day.Date)

	// Distance pass: conclusive whenever both sides have coordinates.
	if prev.RepresentativeCoordinate != nil && day.RepresentativeCoordinate != nil {
		distKm := spatial.CoordinateDistanceMeters(*prev.RepresentativeCoordinate, *day.RepresentativeCoordinate) / 1000.0
		detail := fmt.Sprintf("%.1f km, gap %d days", distKm, gap)

		if distKm <= params.MaxTripRadiusKm && gap <= params.MaxGapDays {
			state.open = append(state.open, day)
			return state, nil, reason(day, models.PassNeighborhood, models.DecisionContinue, detail)
		}
		closed := &models.TripCandidate{Days: state.open}
		return segmentState{open: []models.DayBucket{day}}, closed,
			reason(day, models.PassNeighborhood, models.DecisionSplit, detail)
	}

	// Country fallback pass: one or both coordinates are absent.
	prevCountry, prevOK := resolve(prev)
	dayCountry, dayOK := resolve(&day)

	if prevOK && dayOK {
		detail := fmt.Sprintf("%s vs %s, gap %d days", prevCountry, dayCountry, gap)
		if prevCountry == dayCountry && gap <= params.MaxGapDays {
			state.open = append(state.open, day)
			return state, nil, reason(day, models.PassCountryFallback, models.DecisionContinue, detail)
		}
		closed := &models.TripCandidate{Days: state.open}
		return segmentState{open: []models.DayBucket{day}}, closed,
			reason(day, models.PassCountryFallback, models.DecisionSplit, detail)
	}

	// No coordinates and no resolvable country: never merge on no evidence.
	closed := &models.TripCandidate{Days: state.open}
	return segmentState{open: []models.DayBucket{day}}, closed,
		reason(day, models.PassNoSignal, models.DecisionSplit, "")
}

// bridgeTransition handles days with no qualifying photos: they never
// become trip members, but hold an open trip across a tolerated gap.
func bridgeTransition(state segmentState, day models.DayBucket, params ScanParams) (segmentState, *models.TripCandidate, models.ReasonEntry) {
	if len(state.open) == 0 {
		return state, nil, reason(day, models.PassBridge, models.DecisionHold, "no open trip")
	}

	prev := state.open[len(state.open)-1]
	if gap := calendarGap(prev.Date, day.Date); gap > params.MaxGapDays {
		closed := &models.TripCandidate{Days: state.open}
		return segmentState{}, closed,
			reason(day, models.PassBridge, models.DecisionSplit, fmt.Sprintf("gap %d days", gap))
	}

	return state, nil, reason(day, models.PassBridge, models.DecisionHold, "")
}

func reason(day models.DayBucket, pass, decision, detail string) models.ReasonEntry {
	return models.ReasonEntry{
		Date:     day.Date,
		Pass:     pass,
		Decision: decision,
		Detail:   detail,
	}
}
