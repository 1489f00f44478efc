package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/ekarhu/tripsight/internal/models"
)

// tripName builds a human-readable draft name from the candidate's most
// common country and its date range.
func tripName(candidate models.TripCandidate) string {
	location := modalTripCountry(candidate)
	start := candidate.Days[0].Date
	end := candidate.Days[len(candidate.Days)-1].Date

	dateStr := formatDateRange(start, end)
	if location != "" {
		return fmt.Sprintf("%s - %s", location, dateStr)
	}
	return fmt.Sprintf("Trip - %s", dateStr)
}

func formatDateRange(start, end time.Time) string {
	switch {
	case start.Equal(end):
		return start.Format("Jan 2, 2006")
	case start.Year() == end.Year() && start.Month() == end.Month():
		return fmt.Sprintf("%s %d-%d, %d", start.Format("Jan"), start.Day(), end.Day(), start.Year())
	default:
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
}

// modalTripCountry returns the most common country across the trip's
// days, preferring resolved day countries and falling back to photo
// metadata. Ties break alphabetically so naming stays deterministic.
func modalTripCountry(candidate models.TripCandidate) string {
	counts := make(map[string]int)
	for _, day := range candidate.Days {
		if day.CountryResolved && day.RepresentativeCountry != "" {
			counts[day.RepresentativeCountry] += len(day.QualifyingPhotos)
			continue
		}
		for _, photo := range day.QualifyingPhotos {
			if photo.Country != "" {
				counts[photo.Country]++
			}
		}
	}
	return modalKey(counts)
}

// modalCountry returns the most common non-empty metadata country among
// the given photos, ties broken alphabetically.
func modalCountry(photos []models.PhotoRecord) string {
	counts := make(map[string]int)
	for _, photo := range photos {
		if photo.Country != "" {
			counts[photo.Country]++
		}
	}
	return modalKey(counts)
}

func modalKey(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := ""
	bestCount := 0
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}
