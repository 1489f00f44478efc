package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/ekarhu/tripsight/internal/models"
)

// Earth's mean radius.
const (
	EarthRadiusMeters = 6371000.0
	EarthRadiusKm     = 6371.0
)

// DistanceMeters returns the great-circle distance between two points in
// meters.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceKm returns the great-circle distance between two points in
// kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceMeters(lat1, lon1, lat2, lon2) / 1000.0
}

// CoordinateDistanceMeters is DistanceMeters over model coordinates.
func CoordinateDistanceMeters(a, b models.Coordinate) float64 {
	return DistanceMeters(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// Centroid returns the arithmetic mean of the given coordinates, false
// when the slice is empty. Good enough at place-stop scale; trips never
// cluster across the antimeridian in practice.
func Centroid(coords []models.Coordinate) (models.Coordinate, bool) {
	if len(coords) == 0 {
		return models.Coordinate{}, false
	}
	var sumLat, sumLon float64
	for _, c := range coords {
		sumLat += c.Latitude
		sumLon += c.Longitude
	}
	n := float64(len(coords))
	return models.Coordinate{Latitude: sumLat / n, Longitude: sumLon / n}, true
}
