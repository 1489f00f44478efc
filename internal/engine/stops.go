package engine

import (
	"github.com/ekarhu/tripsight/internal/models"
	"github.com/ekarhu/tripsight/internal/spatial"
)

// ClusterPlaceStops partitions one trip day's qualifying photos into
// ordered place stops with a single left-to-right sweep. Photos without
// coordinates attach to the current stop; the stop's representative
// coordinate is the running centroid of its located members. The result
// is deterministic given the same input ordering.
func ClusterPlaceStops(photos []models.PhotoRecord, stopRadiusMeters float64) []models.PlaceStop {
	if len(photos) == 0 {
		return nil
	}

	var stops []models.PlaceStop
	current := newStopAccumulator(photos[0])

	for _, photo := range photos[1:] {
		switch {
		case photo.Coordinate == nil:
			// Location-less photos inherit the place of their
			// temporally nearest neighbors.
			current.attach(photo)
		case current.centroid == nil:
			// A stop seeded by location-less photos adopts the first
			// located photo's coordinate.
			current.attach(photo)
		case spatial.CoordinateDistanceMeters(*photo.Coordinate, *current.centroid) <= stopRadiusMeters:
			current.attach(photo)
		default:
			stops = append(stops, current.finish(len(stops)))
			current = newStopAccumulator(photo)
		}
	}

	stops = append(stops, current.finish(len(stops)))
	return stops
}

// stopAccumulator is the open place stop of the sweep.
type stopAccumulator struct {
	photos   []models.PhotoRecord
	located  []models.Coordinate
	centroid *models.Coordinate
}

func newStopAccumulator(first models.PhotoRecord) *stopAccumulator {
	acc := &stopAccumulator{}
	acc.attach(first)
	return acc
}

func (a *stopAccumulator) attach(photo models.PhotoRecord) {
	a.photos = append(a.photos, photo)
	if photo.Coordinate != nil {
		a.located = append(a.located, *photo.Coordinate)
		if c, ok := spatial.Centroid(a.located); ok {
			a.centroid = &c
		}
	}
}

func (a *stopAccumulator) finish(orderIndex int) models.PlaceStop {
	return models.PlaceStop{
		OrderIndex:               orderIndex,
		Photos:                   a.photos,
		RepresentativeCoordinate: a.centroid,
	}
}
