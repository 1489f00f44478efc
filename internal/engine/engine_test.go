package engine

import (
	"fmt"
	"time"

	"github.com/ekarhu/tripsight/internal/models"
)

// Shared test fixtures. All tests run in UTC so calendar days are
// unambiguous.

var (
	// Roughly 150 km separates Tokyo and Mount Fuji; Kyoto is ~360 km
	// from Tokyo.
	tokyo = models.Coordinate{Latitude: 35.6812, Longitude: 139.7671}
	kyoto = models.Coordinate{Latitude: 34.9858, Longitude: 135.7588}
)

func ts(day string, hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func photoAt(id string, at time.Time, coord *models.Coordinate) models.PhotoRecord {
	return models.PhotoRecord{ID: id, Timestamp: at, Coordinate: coord}
}

func locatedPhoto(id string, at time.Time, lat, lon float64) models.PhotoRecord {
	return photoAt(id, at, &models.Coordinate{Latitude: lat, Longitude: lon})
}

// offsetCoordinate returns a coordinate the given number of meters north
// of base. One degree of latitude is ~111.32 km.
func offsetCoordinate(base models.Coordinate, meters float64) models.Coordinate {
	return models.Coordinate{
		Latitude:  base.Latitude + meters/111320.0,
		Longitude: base.Longitude,
	}
}

// dayOfPhotos builds a located day bucket for the given date.
func locatedDay(date string, coord models.Coordinate, photoCount int) models.DayBucket {
	day := ts(date, "00:00")
	var photos []models.PhotoRecord
	for i := 0; i < photoCount; i++ {
		photos = append(photos, locatedPhoto(
			fmt.Sprintf("%s-%d", date, i),
			day.Add(time.Duration(10+i)*time.Hour),
			coord.Latitude, coord.Longitude))
	}
	c := coord
	return models.DayBucket{
		Date:                     day,
		QualifyingPhotos:         photos,
		RepresentativeCoordinate: &c,
	}
}

// countrylessDay builds a day bucket with no coordinates whose photos
// carry the given metadata country (empty for none).
func countrylessDay(date string, country string, photoCount int) models.DayBucket {
	day := ts(date, "00:00")
	var photos []models.PhotoRecord
	for i := 0; i < photoCount; i++ {
		p := photoAt(fmt.Sprintf("%s-%d", date, i), day.Add(time.Duration(10+i)*time.Hour), nil)
		p.Country = country
		photos = append(photos, p)
	}
	return models.DayBucket{Date: day, QualifyingPhotos: photos}
}

func bridgeDay(date string) models.DayBucket {
	return models.DayBucket{Date: ts(date, "00:00")}
}

// metadataResolver resolves countries from photo metadata only, the way
// the orchestrator's resolver falls back when no geocoder answers.
func metadataResolver(day *models.DayBucket) (string, bool) {
	if day.CountryResolved {
		return day.RepresentativeCountry, day.RepresentativeCountry != ""
	}
	day.CountryResolved = true
	day.RepresentativeCountry = modalCountry(day.QualifyingPhotos)
	return day.RepresentativeCountry, day.RepresentativeCountry != ""
}

func noSignalResolver(day *models.DayBucket) (string, bool) {
	return "", false
}
