package database

import (
	"database/sql"
	"errors"

	"github.com/ekarhu/tripsight/internal/models"
)

// SaveZone stores the single neighborhood zone, replacing any previous one.
func (db *DB) SaveZone(zone models.NeighborhoodZone) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO neighborhood_zone (id, name, latitude, longitude, radius_meters)
		VALUES (1, ?, ?, ?, ?)
	`, zone.Name, zone.Center.Latitude, zone.Center.Longitude, zone.RadiusMeters)
	return err
}

// GetZone returns the configured zone, or nil when none is set.
func (db *DB) GetZone() (*models.NeighborhoodZone, error) {
	var zone models.NeighborhoodZone
	err := db.conn.QueryRow(`
		SELECT name, latitude, longitude, radius_meters
		FROM neighborhood_zone WHERE id = 1
	`).Scan(&zone.Name, &zone.Center.Latitude, &zone.Center.Longitude, &zone.RadiusMeters)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (db *DB) ClearZone() error {
	_, err := db.conn.Exec(`DELETE FROM neighborhood_zone`)
	return err
}
