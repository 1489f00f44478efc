package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ekarhu/tripsight/internal/models"
)

// ErrDraftNotFound is returned when no stored draft has the given id.
var ErrDraftNotFound = fmt.Errorf("draft not found")

// StoreDrafts replaces all unaccepted drafts with the given scan output.
// Accepted drafts are never touched.
func (db *DB) StoreDrafts(drafts []models.TripDraft) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trip_drafts WHERE accepted = 0`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO trip_drafts (id, name, start_date, end_date, days, accepted, album_id, created_at)
		VALUES (?, ?, ?, ?, ?, 0, '', ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, draft := range drafts {
		days, err := json.Marshal(draft.Days)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(draft.ID, draft.Name, draft.StartDate, draft.EndDate, string(days), now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetDrafts returns all stored drafts ordered by start date.
func (db *DB) GetDrafts() ([]models.TripDraft, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, start_date, end_date, days, accepted, COALESCE(album_id, '')
		FROM trip_drafts
		ORDER BY start_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []models.TripDraft
	for rows.Next() {
		draft, err := scanDraft(rows.Scan)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	return drafts, rows.Err()
}

// GetDraft returns a single draft by id.
func (db *DB) GetDraft(id string) (*models.TripDraft, error) {
	row := db.conn.QueryRow(`
		SELECT id, name, start_date, end_date, days, accepted, COALESCE(album_id, '')
		FROM trip_drafts
		WHERE id = ?
	`, id)

	draft, err := scanDraft(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func scanDraft(scan func(dest ...any) error) (models.TripDraft, error) {
	var draft models.TripDraft
	var daysJSON string
	var acceptedInt int

	err := scan(&draft.ID, &draft.Name, &draft.StartDate, &draft.EndDate,
		&daysJSON, &acceptedInt, &draft.AlbumID)
	if err != nil {
		return draft, err
	}

	if err := json.Unmarshal([]byte(daysJSON), &draft.Days); err != nil {
		return draft, fmt.Errorf("corrupt draft %s: %w", draft.ID, err)
	}
	draft.Accepted = acceptedInt == 1
	return draft, nil
}

// AcceptDraft marks a draft accepted and claims its photos in one
// transaction. Returns the claimed photo ids. Accepting an already
// accepted draft is a no-op on the claimed set.
func (db *DB) AcceptDraft(id string) ([]string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var daysJSON string
	err = tx.QueryRow(`SELECT days FROM trip_drafts WHERE id = ?`, id).Scan(&daysJSON)
	if err == sql.ErrNoRows {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var days []models.TripDay
	if err := json.Unmarshal([]byte(daysJSON), &days); err != nil {
		return nil, fmt.Errorf("corrupt draft %s: %w", id, err)
	}

	if _, err := tx.Exec(`UPDATE trip_drafts SET accepted = 1 WHERE id = ?`, id); err != nil {
		return nil, err
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO claimed_photos (photo_id, trip_id, claimed_at)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	var claimed []string
	for _, day := range days {
		for _, stop := range day.PlaceStops {
			for _, photo := range stop.Photos {
				if _, err := stmt.Exec(photo.ID, id, now); err != nil {
					return nil, err
				}
				claimed = append(claimed, photo.ID)
			}
		}
	}

	return claimed, tx.Commit()
}

// UpdateDraftAlbumID records the photo-library album created for a draft.
func (db *DB) UpdateDraftAlbumID(id string, albumID string) error {
	_, err := db.conn.Exec(`UPDATE trip_drafts SET album_id = ? WHERE id = ?`, albumID, id)
	return err
}

// ClaimedIDs returns the full claimed-photo set as a lookup map.
func (db *DB) ClaimedIDs() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT photo_id FROM claimed_photos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claimed := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		claimed[id] = struct{}{}
	}

	return claimed, rows.Err()
}
