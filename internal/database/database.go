// Package database is the local SQLite store for the neighborhood zone,
// the claimed-photo set and trip drafts.
package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS neighborhood_zone (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT,
		latitude REAL,
		longitude REAL,
		radius_meters REAL
	);

	CREATE TABLE IF NOT EXISTS claimed_photos (
		photo_id TEXT PRIMARY KEY,
		trip_id TEXT,
		claimed_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS trip_drafts (
		id TEXT PRIMARY KEY,
		name TEXT,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		days TEXT,
		accepted INTEGER DEFAULT 0,
		album_id TEXT,
		created_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_claimed_trip ON claimed_photos(trip_id);
	CREATE INDEX IF NOT EXISTS idx_drafts_start ON trip_drafts(start_date);
	`

	_, err := db.conn.Exec(schema)
	return err
}
