package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekarhu/tripsight/internal/models"
)

func TestInferLocationsNearestNeighbor(t *testing.T) {
	base := ts("2023-06-01", "10:00")
	photos := []models.PhotoRecord{
		photoAt("located", base, &tokyo),
		photoAt("blank", base.Add(30*time.Minute), nil),
	}

	out := InferLocations(photos)
	require.NotNil(t, out[1].Coordinate)
	assert.Equal(t, tokyo, *out[1].Coordinate)

	// Input slice untouched.
	assert.Nil(t, photos[1].Coordinate)
}

func TestInferLocationsInterpolates(t *testing.T) {
	base := ts("2023-06-01", "00:00")
	a := models.Coordinate{Latitude: 35.0, Longitude: 135.0}
	b := models.Coordinate{Latitude: 36.0, Longitude: 136.0}
	photos := []models.PhotoRecord{
		photoAt("before", base, &a),
		photoAt("target", base.Add(12*time.Hour), nil),
		photoAt("after", base.Add(24*time.Hour), &b),
	}

	out := InferLocations(photos)
	require.NotNil(t, out[1].Coordinate)
	// Halfway in time puts it halfway in space.
	assert.InDelta(t, 35.5, out[1].Coordinate.Latitude, 1e-9)
	assert.InDelta(t, 135.5, out[1].Coordinate.Longitude, 1e-9)
}

func TestInferLocationsRejectsDistantSupport(t *testing.T) {
	base := ts("2023-06-01", "10:00")
	photos := []models.PhotoRecord{
		photoAt("located", base, &tokyo),
		photoAt("blank", base.Add(10*24*time.Hour), nil),
	}

	out := InferLocations(photos)
	assert.Nil(t, out[1].Coordinate)
}

func TestInferLocationsNoLocatedPhotos(t *testing.T) {
	photos := []models.PhotoRecord{
		photoAt("a", ts("2023-06-01", "10:00"), nil),
	}
	out := InferLocations(photos)
	assert.Nil(t, out[0].Coordinate)
}

func TestTimeBasedConfidenceDecay(t *testing.T) {
	assert.Equal(t, 1.0, timeBasedConfidence(0.5))
	assert.Equal(t, 0.9, timeBasedConfidence(3))
	assert.Equal(t, 0.7, timeBasedConfidence(12))
	assert.Equal(t, 0.5, timeBasedConfidence(48))
	assert.Equal(t, 0.3, timeBasedConfidence(100))
	assert.Equal(t, 0.1, timeBasedConfidence(500))
}
