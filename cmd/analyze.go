package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekarhu/tripsight/internal/database"
	"github.com/ekarhu/tripsight/internal/engine"
	"github.com/ekarhu/tripsight/internal/immich"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze photo coverage for a time range",
	Long:  `Shows how photos in a range are categorized: inside the neighborhood zone, claimed by accepted trips, or unclaimed travel candidates.`,
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&scanStart, "start", "", "Range start date (YYYY-MM-DD)")
	analyzeCmd.Flags().StringVar(&scanEnd, "end", "", "Range end date, inclusive (YYYY-MM-DD)")
	analyzeCmd.Flags().IntVar(&scanDays, "days", 90, "Analyze the last N days when no explicit range is given")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireImmich(cfg); err != nil {
		return err
	}

	analyzeRange, err := resolveRange()
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
		return fmt.Errorf("failed to load zone: %w", err)
	}
	claimed, err := db.ClaimedIDs()
	if err != nil {
		return fmt.Errorf("failed to load claimed photos: %w", err)
	}

	client := immich.NewClient(cfg.Immich.URL, cfg.Immich.APIKey)
	fmt.Printf("Fetching photos %s to %s...\n",
		analyzeRange.Start.Format("2006-01-02"), analyzeRange.End.Format("2006-01-02"))
	photos, err := client.FetchPhotos(cmd.Context(), analyzeRange)
	if err != nil {
		return fmt.Errorf("failed to fetch photos: %w", err)
	}

	var withGPS, withoutGPS, inZone, claimedCount, candidates int
	for _, photo := range photos {
		if photo.HasCoordinate() {
			withGPS++
		} else {
			withoutGPS++
		}

		if _, ok := claimed[photo.ID]; ok {
			claimedCount++
			continue
		}
		if engine.InNeighborhood(zone, photo) {
			inZone++
			continue
		}
		candidates++
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("PHOTO COVERAGE ANALYSIS")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Printf("Total photos:                 %d\n", len(photos))
	if len(photos) == 0 {
		return nil
	}
	fmt.Println()

	fmt.Println("Location data:")
	fmt.Printf("  With GPS:                   %d (%.1f%%)\n", withGPS, percent(withGPS, len(photos)))
	fmt.Printf("  Without GPS:                %d (%.1f%%)\n", withoutGPS, percent(withoutGPS, len(photos)))
	fmt.Println()

	fmt.Println("Categorization:")
	fmt.Printf("  Claimed by accepted trips:  %d (%.1f%%)\n", claimedCount, percent(claimedCount, len(photos)))
	if zone != nil {
		fmt.Printf("  Inside neighborhood zone:   %d (%.1f%%)\n", inZone, percent(inZone, len(photos)))
	} else {
		fmt.Println("  Inside neighborhood zone:   N/A (no zone configured)")
	}
	fmt.Printf("  Unclaimed travel candidates: %d (%.1f%%)\n", candidates, percent(candidates, len(photos)))
	fmt.Println()

	if candidates > 0 {
		fmt.Printf("%d photos could belong to undetected trips. Run 'tripsight scan' over this range.\n", candidates)
	}
	if zone == nil && withGPS > 0 {
		fmt.Println("Tip: set a neighborhood zone so everyday photos near home are excluded.")
	}
	return nil
}

func percent(n, total int) float64 {
	return float64(n) * 100 / float64(total)
}
