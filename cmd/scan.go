package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ekarhu/tripsight/internal/database"
	"github.com/ekarhu/tripsight/internal/engine"
	"github.com/ekarhu/tripsight/internal/geocode"
	"github.com/ekarhu/tripsight/internal/immich"
	"github.com/ekarhu/tripsight/internal/models"
)

var (
	scanStart        string
	scanEnd          string
	scanDays         int
	maxTripRadiusKm  float64
	maxGapDays       int
	stopRadiusMeters float64
	inferLocations   bool
	explainScan      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the photo library for trips",
	Long: `Scans a time range of the photo library and detects candidate trips with
ordered place stops. Results are stored as drafts; photos already claimed
by accepted trips are skipped, so repeated scans only surface new trips.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanStart, "start", "", "Range start date (YYYY-MM-DD)")
	scanCmd.Flags().StringVar(&scanEnd, "end", "", "Range end date, inclusive (YYYY-MM-DD)")
	scanCmd.Flags().IntVar(&scanDays, "days", 90, "Scan the last N days when no explicit range is given")
	scanCmd.Flags().Float64Var(&maxTripRadiusKm, "max-trip-radius-km", 0, "Maximum distance in km between consecutive days of one trip (overrides config file)")
	scanCmd.Flags().IntVar(&maxGapDays, "max-gap-days", 0, "Maximum tolerated gap in days inside one trip (overrides config file)")
	scanCmd.Flags().Float64Var(&stopRadiusMeters, "stop-radius-meters", 0, "Place stop cluster radius in meters (overrides config file)")
	scanCmd.Flags().BoolVar(&inferLocations, "infer-locations", false, "Borrow coordinates for GPS-less photos from temporally nearby ones")
	scanCmd.Flags().BoolVar(&explainScan, "explain", false, "Print the per-day merge/split reason log")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireImmich(cfg); err != nil {
		return err
	}

	if cmd.Flags().Changed("max-trip-radius-km") {
		cfg.Thresholds.MaxTripRadiusKm = maxTripRadiusKm
	}
	if cmd.Flags().Changed("max-gap-days") {
		cfg.Thresholds.MaxGapDays = maxGapDays
	}
	if cmd.Flags().Changed("stop-radius-meters") {
		cfg.Thresholds.StopRadiusMeters = stopRadiusMeters
	}
	params := cfg.Thresholds.ScanParams()

	scanRange, err := resolveRange()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	zone, err := db.GetZone()
	if err != nil {
		return fmt.Errorf("failed to load neighborhood zone: %w", err)
	}
	if zone == nil {
		fmt.Println("Warning: no neighborhood zone configured!")
		fmt.Println("Without a zone, photos taken at home count as travel.")
		fmt.Println("Use 'tripsight zone set' to define your home neighborhood.")
		fmt.Println()
	} else {
		fmt.Printf("Neighborhood zone: %s (%.4f, %.4f, %.0fm radius)\n",
			zone.Name, zone.Center.Latitude, zone.Center.Longitude, zone.RadiusMeters)
	}

	claimed, err := db.ClaimedIDs()
	if err != nil {
		return fmt.Errorf("failed to load claimed photos: %w", err)
	}
	if len(claimed) > 0 {
		fmt.Printf("Skipping %d photos claimed by accepted trips\n", len(claimed))
	}

	var geocoder geocode.Geocoder
	if cfg.Geocoder.URL != "" {
		geocoder = geocode.NewCachedGeocoder(
			geocode.NewHTTPGeocoder(cfg.Geocoder.URL, params.GeocodeTimeout),
			geocode.NewCache(geocode.DefaultCacheSize))
	}

	client := immich.NewClient(cfg.Immich.URL, cfg.Immich.APIKey)
	scanner := engine.NewScanner(client, geocoder, params)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Scanning %s to %s...\n",
		scanRange.Start.Format("2006-01-02"), scanRange.End.Format("2006-01-02"))

	bar := progressbar.NewOptions(5,
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish())

	result, err := scanner.Scan(ctx, engine.ScanRequest{
		Range:          scanRange,
		Zone:           zone,
		Claimed:        claimed,
		Timezone:       time.Local,
		InferLocations: inferLocations,
	}, func(stage string) {
		bar.Describe(stage)
		bar.Add(1)
	})
	bar.Finish()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("scan cancelled")
		}
		return err
	}

	if err := db.StoreDrafts(result.Drafts); err != nil {
		return fmt.Errorf("failed to store drafts: %w", err)
	}

	if explainScan {
		printReasonLog(result.ReasonLog)
	}

	printScanSummary(result)
	return nil
}

// resolveRange builds the scan range from --start/--end, or the last
// --days days when no explicit range is given. --end is an inclusive
// calendar date; the range extends to the following midnight.
func resolveRange() (models.TimeRange, error) {
	now := time.Now()
	r := models.TimeRange{Start: now.AddDate(0, 0, -scanDays), End: now}

	if scanStart != "" {
		start, err := time.ParseInLocation("2006-01-02", scanStart, time.Local)
		if err != nil {
			return r, fmt.Errorf("invalid start date %q: %w (expected YYYY-MM-DD)", scanStart, err)
		}
		r.Start = start
	}
	if scanEnd != "" {
		end, err := time.ParseInLocation("2006-01-02", scanEnd, time.Local)
		if err != nil {
			return r, fmt.Errorf("invalid end date %q: %w (expected YYYY-MM-DD)", scanEnd, err)
		}
		r.End = end.AddDate(0, 0, 1)
	}
	return r, nil
}

func printReasonLog(entries []models.ReasonEntry) {
	fmt.Println("\n" + strings.Repeat("-", 60))
	fmt.Println("REASON LOG")
	fmt.Println(strings.Repeat("-", 60))
	for _, entry := range entries {
		line := fmt.Sprintf("%s  %-22s %-8s", entry.Date.Format("2006-01-02"), entry.Pass, entry.Decision)
		if entry.Detail != "" {
			line += "  " + entry.Detail
		}
		fmt.Println(line)
	}
}

func printScanSummary(result *engine.ScanResult) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SCAN SUMMARY")
	fmt.Println(strings.Repeat("=", 60))

	if len(result.Drafts) == 0 {
		fmt.Println("No trips detected in this range.")
		fmt.Println("Try a wider range or adjust parameters (--max-trip-radius-km, --max-gap-days).")
		return
	}

	fmt.Printf("Trips detected: %d\n\n", len(result.Drafts))
	for i, draft := range result.Drafts {
		stops := 0
		for _, day := range draft.Days {
			stops += len(day.PlaceStops)
		}
		fmt.Printf("Trip %d: %s\n", i+1, draft.Name)
		fmt.Printf("  Dates: %s - %s\n",
			draft.StartDate.Format("Jan 2, 2006"), draft.EndDate.Format("Jan 2, 2006"))
		fmt.Printf("  Days: %d\n", len(draft.Days))
		fmt.Printf("  Place stops: %d\n", stops)
		fmt.Printf("  Photos: %d\n", draft.PhotoCount())
		fmt.Printf("  Draft ID: %s\n", draft.ID)
		fmt.Println()
	}

	fmt.Println("Next: review with 'tripsight drafts', then 'tripsight accept <draft-id>'")
}
