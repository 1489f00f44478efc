package engine

import (
	"math"
	"sort"
	"time"

	"github.com/ekarhu/tripsight/internal/models"
)

// BucketizeDays groups photos into calendar-day buckets in the given
// timezone, splits each day through the neighborhood filter, and derives
// the day's representative coordinate. Buckets come back sorted by date
// ascending. Country resolution is left to the segmenter, which only
// pays for the days its fallback pass actually needs.
func BucketizeDays(photos []models.PhotoRecord, zone *models.NeighborhoodZone, loc *time.Location) []models.DayBucket {
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[time.Time][]models.PhotoRecord)
	for _, photo := range photos {
		local := photo.Timestamp.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		byDay[day] = append(byDay[day], photo)
	}

	buckets := make([]models.DayBucket, 0, len(byDay))
	for day, dayPhotos := range byDay {
		sort.Slice(dayPhotos, func(i, j int) bool {
			if dayPhotos[i].Timestamp.Equal(dayPhotos[j].Timestamp) {
				return dayPhotos[i].ID < dayPhotos[j].ID
			}
			return dayPhotos[i].Timestamp.Before(dayPhotos[j].Timestamp)
		})

		bucket := models.DayBucket{Date: day}
		for _, photo := range dayPhotos {
			if InNeighborhood(zone, photo) {
				bucket.ExcludedPhotos = append(bucket.ExcludedPhotos, photo)
			} else {
				bucket.QualifyingPhotos = append(bucket.QualifyingPhotos, photo)
			}
		}

		bucket.RepresentativeCoordinate = representativeCoordinate(bucket.QualifyingPhotos, day)
		buckets = append(buckets, bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date.Before(buckets[j].Date)
	})

	return buckets
}

// representativeCoordinate picks the coordinate of the located photo
// closest to the day's temporal midpoint (local noon).
func representativeCoordinate(photos []models.PhotoRecord, day time.Time) *models.Coordinate {
	midpoint := day.Add(12 * time.Hour)

	var best *models.Coordinate
	bestDiff := math.MaxFloat64
	for i := range photos {
		if photos[i].Coordinate == nil {
			continue
		}
		diff := math.Abs(photos[i].Timestamp.Sub(midpoint).Seconds())
		if diff < bestDiff {
			bestDiff = diff
			best = photos[i].Coordinate
		}
	}
	return best
}

// calendarGap returns the number of empty calendar days between two
// dates: consecutive days gap 0, June 1 to June 3 gap 1.
func calendarGap(earlier, later time.Time) int {
	// Round so DST-shifted midnights still count as whole days.
	days := int(math.Round(later.Sub(earlier).Hours() / 24))
	if days < 1 {
		return 0
	}
	return days - 1
}
