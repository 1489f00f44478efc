package engine

import (
	"math"
	"sort"

	"github.com/ekarhu/tripsight/internal/models"
)

// Location inference constants.
const (
	// interpolationPenalty lowers confidence for interpolated positions
	// relative to a single nearest neighbor.
	interpolationPenalty = 0.9

	// inferenceConfidenceFloor is the minimum confidence at which an
	// inferred coordinate is accepted (nearest located photo within
	// three days).
	inferenceConfidenceFloor = 0.5
)

// InferLocations returns a copy of photos where records without a
// coordinate borrow one from temporally nearby located photos: a
// time-weighted interpolation when located photos closely bracket the
// target, otherwise the nearest located photo when it is close enough
// in time. Photos that cannot be inferred confidently stay
// coordinate-less. Deterministic for a given input.
func InferLocations(photos []models.PhotoRecord) []models.PhotoRecord {
	var located []models.PhotoRecord
	for _, p := range photos {
		if p.Coordinate != nil {
			located = append(located, p)
		}
	}
	if len(located) == 0 {
		return photos
	}

	sort.Slice(located, func(i, j int) bool {
		return located[i].Timestamp.Before(located[j].Timestamp)
	})

	out := make([]models.PhotoRecord, len(photos))
	copy(out, photos)
	for i := range out {
		if out[i].Coordinate != nil {
			continue
		}
		if coord := inferCoordinate(out[i], located); coord != nil {
			out[i].Coordinate = coord
		}
	}
	return out
}

func inferCoordinate(target models.PhotoRecord, located []models.PhotoRecord) *models.Coordinate {
	// Bracketing evidence beats a single neighbor.
	if coord := interpolateCoordinate(target, located); coord != nil {
		return coord
	}

	nearest := nearestInTime(target, located)
	if nearest != nil {
		hours := math.Abs(target.Timestamp.Sub(nearest.Timestamp).Hours())
		if timeBasedConfidence(hours) >= inferenceConfidenceFloor {
			c := *nearest.Coordinate
			return &c
		}
	}
	return nil
}

// nearestInTime finds the located photo closest in time to the target.
// located must be sorted by timestamp ascending.
func nearestInTime(target models.PhotoRecord, located []models.PhotoRecord) *models.PhotoRecord {
	idx := sort.Search(len(located), func(i int) bool {
		return !located[i].Timestamp.Before(target.Timestamp)
	})

	var nearest *models.PhotoRecord
	minDiff := math.MaxFloat64

	if idx > 0 {
		diff := math.Abs(target.Timestamp.Sub(located[idx-1].Timestamp).Seconds())
		if diff < minDiff {
			minDiff = diff
			nearest = &located[idx-1]
		}
	}
	if idx < len(located) {
		diff := math.Abs(target.Timestamp.Sub(located[idx].Timestamp).Seconds())
		if diff < minDiff {
			nearest = &located[idx]
		}
	}
	return nearest
}

func interpolateCoordinate(target models.PhotoRecord, located []models.PhotoRecord) *models.Coordinate {
	idx := sort.Search(len(located), func(i int) bool {
		return !located[i].Timestamp.Before(target.Timestamp)
	})
	if idx == 0 || idx >= len(located) {
		return nil
	}

	before := located[idx-1]
	after := located[idx]

	total := after.Timestamp.Sub(before.Timestamp).Seconds()
	if total == 0 {
		return nil
	}
	weight := target.Timestamp.Sub(before.Timestamp).Seconds() / total

	hoursBefore := target.Timestamp.Sub(before.Timestamp).Hours()
	hoursAfter := after.Timestamp.Sub(target.Timestamp).Hours()
	confidence := timeBasedConfidence(math.Max(hoursBefore, hoursAfter)) * interpolationPenalty
	if confidence < inferenceConfidenceFloor {
		return nil
	}

	return &models.Coordinate{
		Latitude:  before.Coordinate.Latitude + (after.Coordinate.Latitude-before.Coordinate.Latitude)*weight,
		Longitude: before.Coordinate.Longitude + (after.Coordinate.Longitude-before.Coordinate.Longitude)*weight,
	}
}

// timeBasedConfidence decays with the time gap to the supporting photo.
func timeBasedConfidence(hoursDiff float64) float64 {
	switch {
	case hoursDiff < 1:
		return 1.0
	case hoursDiff < 6:
		return 0.9
	case hoursDiff < 24:
		return 0.7
	case hoursDiff < 72:
		return 0.5
	case hoursDiff < 168:
		return 0.3
	default:
		return 0.1
	}
}
