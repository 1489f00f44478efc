package models

import "time"

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PhotoRecord is the metadata snapshot of one photo as read from the
// photo library. The engine never mutates it.
type PhotoRecord struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`

	// Country as reported by the library's own metadata (EXIF or the
	// server's geocoding), if any. Used as a country source for days
	// whose photos carry no usable coordinates.
	Country string `json:"country,omitempty"`
}

// HasCoordinate reports whether the photo carries location metadata.
func (p PhotoRecord) HasCoordinate() bool {
	return p.Coordinate != nil
}

// NeighborhoodZone is the user's "home" circle. Photos inside it do not
// count as travel.
type NeighborhoodZone struct {
	Name         string     `json:"name"`
	Center       Coordinate `json:"center"`
	RadiusMeters float64    `json:"radius_meters"`
}

// TimeRange bounds a scan. Start is inclusive, End exclusive.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the range is usable (non-zero length, ordered).
func (r TimeRange) Valid() bool {
	return r.End.After(r.Start)
}

// DayBucket holds one calendar day's photos after neighborhood filtering.
type DayBucket struct {
	// Date is midnight of the calendar day in the scan's timezone.
	Date time.Time `json:"date"`

	// QualifyingPhotos are the day's photos not excluded by the
	// neighborhood filter, sorted by timestamp ascending.
	QualifyingPhotos []PhotoRecord `json:"qualifying_photos"`

	// ExcludedPhotos are the photos the neighborhood filter removed.
	// Kept for diagnostics only.
	ExcludedPhotos []PhotoRecord `json:"excluded_photos,omitempty"`

	// RepresentativeCoordinate is the coordinate of the qualifying photo
	// closest to the day's temporal midpoint, nil if none has one.
	RepresentativeCoordinate *Coordinate `json:"representative_coordinate,omitempty"`

	// RepresentativeCountry is resolved lazily by the segmenter's
	// country fallback and memoized here. Empty until CountryResolved.
	RepresentativeCountry string `json:"representative_country,omitempty"`
	CountryResolved       bool   `json:"-"`
}

// IsBridge reports whether the day has no qualifying photos. Bridge days
// never join a trip but can hold one open across a short gap.
func (d DayBucket) IsBridge() bool {
	return len(d.QualifyingPhotos) == 0
}

// Segmentation pass names and decisions recorded in the reason log.
const (
	PassNeighborhood    = "neighborhood_pass"
	PassCountryFallback = "country_fallback_pass"
	PassNoSignal        = "no_signal"
	PassBridge          = "bridge_day"
	PassOpen            = "trip_open"

	DecisionContinue = "continue"
	DecisionSplit    = "split"
	DecisionStart    = "start"
	DecisionHold     = "hold"
)

// ReasonEntry records why a day merged into or split from a trip.
type ReasonEntry struct {
	Date     time.Time `json:"date"`
	Pass     string    `json:"pass"`
	Decision string    `json:"decision"`
	Detail   string    `json:"detail,omitempty"`
}

// TripCandidate is a maximal contiguous run of days judged to belong to
// one travel episode. Candidates from one segmentation never overlap.
type TripCandidate struct {
	Days []DayBucket `json:"days"`
}

// PlaceStop is a spatial cluster of photos within one trip day.
type PlaceStop struct {
	OrderIndex int           `json:"order_index"`
	Photos     []PhotoRecord `json:"photos"`

	// RepresentativeCoordinate is the centroid of located members, nil
	// only when no member carries a coordinate.
	RepresentativeCoordinate *Coordinate `json:"representative_coordinate,omitempty"`
}

// TripDay is one day of an assembled trip draft.
type TripDay struct {
	DayIndex   int         `json:"day_index"`
	Date       time.Time   `json:"date"`
	PlaceStops []PlaceStop `json:"place_stops"`
}

// TripDraft is the engine's final output for one detected trip. Immutable
// once produced; user curation happens on a copy elsewhere.
type TripDraft struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      []TripDay `json:"days"`
	Accepted  bool      `json:"accepted"`

	// AlbumID is set when the accepted trip was materialized as an album
	// in the photo library.
	AlbumID string `json:"album_id,omitempty"`
}

// PhotoIDs returns every photo identifier in the draft, in day/stop order.
func (t TripDraft) PhotoIDs() []string {
	var ids []string
	for _, day := range t.Days {
		for _, stop := range day.PlaceStops {
			for _, photo := range stop.Photos {
				ids = append(ids, photo.ID)
			}
		}
	}
	return ids
}

// PhotoCount returns the number of photos in the draft.
func (t TripDraft) PhotoCount() int {
	n := 0
	for _, day := range t.Days {
		for _, stop := range day.PlaceStops {
			n += len(stop.Photos)
		}
	}
	return n
}
