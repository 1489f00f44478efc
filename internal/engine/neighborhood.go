package engine

import (
	"github.com/ekarhu/tripsight/internal/models"
	"github.com/ekarhu/tripsight/internal/spatial"
)

// InNeighborhood reports whether the photo falls inside the user's home
// zone. Photos without coordinates are never excluded here; the country
// fallback deals with them later. A nil zone excludes nothing.
func InNeighborhood(zone *models.NeighborhoodZone, photo models.PhotoRecord) bool {
	if zone == nil || photo.Coordinate == nil {
		return false
	}
	distance := spatial.CoordinateDistanceMeters(zone.Center, *photo.Coordinate)
	return distance <= zone.RadiusMeters
}
