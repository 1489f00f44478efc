// Package engine turns raw photo metadata into candidate trips and
// ordered place stops. The pipeline runs strictly forward: neighborhood
// filter, day bucketizer, trip segmenter, place-stop clusterer, all
// driven by the scan orchestrator. Everything here is deterministic for
// a given input snapshot; only the range boundary may come from the
// wall clock.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ekarhu/tripsight/internal/geocode"
	"github.com/ekarhu/tripsight/internal/models"
)

// PhotoSource enumerates photo metadata for a time range. It must
// return a consistent read-only snapshot.
type PhotoSource interface {
	FetchPhotos(ctx context.Context, r models.TimeRange) ([]models.PhotoRecord, error)
}

// Boundary errors surfaced to the caller as distinct outcomes.
// Cancellation propagates as context.Canceled.
var (
	// ErrInvalidRange rejects a scan whose range ends before it starts
	// or has zero length, before any work begins.
	ErrInvalidRange = errors.New("invalid scan range")

	// ErrNoPhotoAccess means the photo library could not be read. Never
	// conflated with an empty ("no trips found") result.
	ErrNoPhotoAccess = errors.New("photo library unavailable")
)

// Coarse progress stages reported to the caller.
const (
	StageFetching    = "fetching"
	StageBucketizing = "bucketizing"
	StageSegmenting  = "segmenting"
	StageClustering  = "clustering stops"
	StageAssembling  = "assembling"
)

// ProgressFunc observes coarse scan progress. May be nil.
type ProgressFunc func(stage string)

// ScanRequest is one scan's immutable input snapshot.
type ScanRequest struct {
	Range models.TimeRange
	Zone  *models.NeighborhoodZone

	// Claimed photos are excluded before any clustering; the engine
	// never writes this set.
	Claimed map[string]struct{}

	// Timezone for calendar-day bucketing; time.Local when nil.
	Timezone *time.Location

	// InferLocations borrows coordinates for GPS-less photos from
	// temporally nearby located ones before bucketizing.
	InferLocations bool
}

// ScanResult is the assembled output of one scan.
type ScanResult struct {
	Drafts []models.TripDraft

	// ReasonLog explains every day's merge/split decision. Callers may
	// surface or discard it; collecting it does not change the result.
	ReasonLog []models.ReasonEntry
}

// Scanner drives the detection pipeline. Scans are serialized: a second
// Scan call blocks until the in-flight one finishes or is cancelled.
type Scanner struct {
	mu       sync.Mutex
	source   PhotoSource
	geocoder geocode.Geocoder
	params   ScanParams
}

// NewScanner wires the pipeline to its collaborators. The geocoder
// should already be cache-wrapped.
func NewScanner(source PhotoSource, geocoder geocode.Geocoder, params ScanParams) *Scanner {
	return &Scanner{source: source, geocoder: geocoder, params: params}
}

// Scan runs the pipeline over the requested range. Cancellation is
// cooperative: on a cancelled context no partial result is returned and
// nothing is written anywhere.
func (s *Scanner) Scan(ctx context.Context, req ScanRequest, progress ProgressFunc) (*ScanResult, error) {
	if !req.Range.Valid() {
		return nil, ErrInvalidRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	report(progress, StageFetching)
	photos, err := s.source.FetchPhotos(ctx, req.Range)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNoPhotoAccess, err)
	}

	photos = dropClaimed(photos, req.Claimed)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.InferLocations {
		photos = InferLocations(photos)
	}

	report(progress, StageBucketizing)
	buckets := BucketizeDays(photos, req.Zone, req.Timezone)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report(progress, StageSegmenting)
	candidates, reasonLog, err := SegmentTrips(ctx, buckets, s.params, s.countryResolver(ctx))
	if err != nil {
		return nil, err
	}

	report(progress, StageClustering)
	drafts := make([]models.TripDraft, 0, len(candidates))
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		drafts = append(drafts, assembleDraft(candidate, s.params))
	}

	report(progress, StageAssembling)
	return &ScanResult{Drafts: drafts, ReasonLog: reasonLog}, nil
}

// countryResolver builds the segmenter's lazy, memoizing country lookup:
// reverse-geocode the representative coordinate when the day has one,
// fall back to the most common metadata country otherwise. Geocoder
// failures degrade to the metadata fallback and never abort the scan.
func (s *Scanner) countryResolver(ctx context.Context) CountryResolver {
	return func(day *models.DayBucket) (string, bool) {
		if day.CountryResolved {
			return day.RepresentativeCountry, day.RepresentativeCountry != ""
		}
		day.CountryResolved = true

		if day.RepresentativeCoordinate != nil && s.geocoder != nil {
			lookupCtx, cancel := context.WithTimeout(ctx, s.params.GeocodeTimeout)
			country, err := s.geocoder.LookupCountry(lookupCtx,
				day.RepresentativeCoordinate.Latitude, day.RepresentativeCoordinate.Longitude)
			cancel()
			if err == nil && country != "" {
				day.RepresentativeCountry = country
				return country, true
			}
		}

		if country := modalCountry(day.QualifyingPhotos); country != "" {
			day.RepresentativeCountry = country
			return country, true
		}
		return "", false
	}
}

// assembleDraft clusters each candidate day into place stops and wraps
// the result as an immutable draft with a derived, stable identifier.
func assembleDraft(candidate models.TripCandidate, params ScanParams) models.TripDraft {
	days := make([]models.TripDay, 0, len(candidate.Days))
	for i, day := range candidate.Days {
		days = append(days, models.TripDay{
			DayIndex:   i,
			Date:       day.Date,
			PlaceStops: ClusterPlaceStops(day.QualifyingPhotos, params.StopRadiusMeters),
		})
	}

	return models.TripDraft{
		ID:        draftID(candidate),
		Name:      tripName(candidate),
		StartDate: candidate.Days[0].Date,
		EndDate:   candidate.Days[len(candidate.Days)-1].Date,
		Days:      days,
	}
}

// draftID derives a stable identifier from the trip's first day and
// photo, so re-scanning the same snapshot yields identical drafts.
func draftID(candidate models.TripCandidate) string {
	seed := fmt.Sprintf("tripsight:%s:%s",
		candidate.Days[0].Date.Format("2006-01-02"),
		candidate.Days[0].QualifyingPhotos[0].ID)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

func dropClaimed(photos []models.PhotoRecord, claimed map[string]struct{}) []models.PhotoRecord {
	if len(claimed) == 0 {
		return photos
	}
	kept := make([]models.PhotoRecord, 0, len(photos))
	for _, photo := range photos {
		if _, ok := claimed[photo.ID]; !ok {
			kept = append(kept, photo)
		}
	}
	return kept
}

func report(progress ProgressFunc, stage string) {
	if progress != nil {
		progress(stage)
	}
}
