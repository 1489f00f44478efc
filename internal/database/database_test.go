package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekarhu/tripsight/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "tripsight.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleDraft(id string, startDay int, photoIDs ...string) models.TripDraft {
	start := time.Date(2023, 6, startDay, 0, 0, 0, 0, time.UTC)
	photos := make([]models.PhotoRecord, 0, len(photoIDs))
	for i, pid := range photoIDs {
		photos = append(photos, models.PhotoRecord{
			ID:        pid,
			Timestamp: start.Add(time.Duration(9+i) * time.Hour),
			Coordinate: &models.Coordinate{
				Latitude: 35.6812, Longitude: 139.7671,
			},
		})
	}
	return models.TripDraft{
		ID:        id,
		Name:      "Japan - Jun, 2023",
		StartDate: start,
		EndDate:   start,
		Days: []models.TripDay{{
			DayIndex: 0,
			Date:     start,
			PlaceStops: []models.PlaceStop{{
				OrderIndex:               0,
				Photos:                   photos,
				RepresentativeCoordinate: &models.Coordinate{Latitude: 35.6812, Longitude: 139.7671},
			}},
		}},
	}
}

func TestZoneRoundTrip(t *testing.T) {
	db := openTestDB(t)

	zone, err := db.GetZone()
	require.NoError(t, err)
	assert.Nil(t, zone)

	want := models.NeighborhoodZone{
		Name:         "home",
		Center:       models.Coordinate{Latitude: 60.1699, Longitude: 24.9384},
		RadiusMeters: 500,
	}
	require.NoError(t, db.SaveZone(want))

	got, err := db.GetZone()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	// Saving again overwrites the single row.
	want.RadiusMeters = 800
	require.NoError(t, db.SaveZone(want))
	got, err = db.GetZone()
	require.NoError(t, err)
	assert.Equal(t, 800.0, got.RadiusMeters)

	require.NoError(t, db.ClearZone())
	got, err = db.GetZone()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreAndGetDrafts(t *testing.T) {
	db := openTestDB(t)

	drafts := []models.TripDraft{
		sampleDraft("draft-2", 8, "c", "d"),
		sampleDraft("draft-1", 1, "a", "b"),
	}
	require.NoError(t, db.StoreDrafts(drafts))

	stored, err := db.GetDrafts()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "draft-1", stored[0].ID)
	assert.Equal(t, "draft-2", stored[1].ID)
	assert.Equal(t, []string{"a", "b"}, stored[0].PhotoIDs())
	assert.False(t, stored[0].Accepted)
}

func TestStoreDraftsReplacesUnaccepted(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.StoreDrafts([]models.TripDraft{
		sampleDraft("draft-1", 1, "a"),
		sampleDraft("draft-2", 8, "b"),
	}))
	_, err := db.AcceptDraft("draft-1")
	require.NoError(t, err)

	// A re-scan stores a fresh set; the accepted draft survives, the
	// unaccepted one is replaced.
	require.NoError(t, db.StoreDrafts([]models.TripDraft{
		sampleDraft("draft-3", 15, "c"),
	}))

	stored, err := db.GetDrafts()
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "draft-1", stored[0].ID)
	assert.True(t, stored[0].Accepted)
	assert.Equal(t, "draft-3", stored[1].ID)
}

func TestGetDraftNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetDraft("missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestAcceptDraftClaimsPhotos(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.StoreDrafts([]models.TripDraft{
		sampleDraft("draft-1", 1, "a", "b"),
	}))

	claimed, err := db.AcceptDraft("draft-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, claimed)

	ids, err := db.ClaimedIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "a")

	draft, err := db.GetDraft("draft-1")
	require.NoError(t, err)
	assert.True(t, draft.Accepted)

	// Accepting again does not duplicate claims.
	_, err = db.AcceptDraft("draft-1")
	require.NoError(t, err)
	ids, err = db.ClaimedIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestAcceptDraftNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.AcceptDraft("missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestClaimedIDsEmpty(t *testing.T) {
	db := openTestDB(t)

	ids, err := db.ClaimedIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUpdateDraftAlbumID(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.StoreDrafts([]models.TripDraft{
		sampleDraft("draft-1", 1, "a"),
	}))
	require.NoError(t, db.UpdateDraftAlbumID("draft-1", "album-1"))

	draft, err := db.GetDraft("draft-1")
	require.NoError(t, err)
	assert.Equal(t, "album-1", draft.AlbumID)
}