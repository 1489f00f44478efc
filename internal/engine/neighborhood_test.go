package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekarhu/tripsight/internal/models"
)

func TestInNeighborhood(t *testing.T) {
	zone := &models.NeighborhoodZone{
		Name:         "home",
		Center:       tokyo,
		RadiusMeters: 500,
	}

	inside := locatedPhoto("a", ts("2023-06-01", "10:00"), tokyo.Latitude, tokyo.Longitude)
	assert.True(t, InNeighborhood(zone, inside))

	// Just inside and just outside the radius boundary.
	nearEdge := offsetCoordinate(tokyo, 499)
	assert.True(t, InNeighborhood(zone, photoAt("b", ts("2023-06-01", "10:00"), &nearEdge)))

	pastEdge := offsetCoordinate(tokyo, 501)
	assert.False(t, InNeighborhood(zone, photoAt("c", ts("2023-06-01", "10:00"), &pastEdge)))
}

func TestInNeighborhoodNoCoordinate(t *testing.T) {
	zone := &models.NeighborhoodZone{Center: tokyo, RadiusMeters: 500}
	assert.False(t, InNeighborhood(zone, photoAt("a", ts("2023-06-01", "10:00"), nil)))
}

func TestInNeighborhoodNilZone(t *testing.T) {
	photo := locatedPhoto("a", ts("2023-06-01", "10:00"), tokyo.Latitude, tokyo.Longitude)
	assert.False(t, InNeighborhood(nil, photo))
}
