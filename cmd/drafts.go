package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekarhu/tripsight/internal/database"
)

var draftsVerbose bool

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List stored trip drafts",
	RunE:  runDrafts,
}

func init() {
	rootCmd.AddCommand(draftsCmd)
	draftsCmd.Flags().BoolVarP(&draftsVerbose, "verbose", "v", false, "Show per-day place stops")
}

func runDrafts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	drafts, err := db.GetDrafts()
	if err != nil {
		return fmt.Errorf("failed to load drafts: %w", err)
	}

	if len(drafts) == 0 {
		fmt.Println("No drafts stored. Run 'tripsight scan' first.")
		return nil
	}

	for i, draft := range drafts {
		status := "draft"
		if draft.Accepted {
			status = "accepted"
		}

		fmt.Printf("%d. %s [%s]\n", i+1, draft.Name, status)
		fmt.Printf("   ID: %s\n", draft.ID)
		fmt.Printf("   %s - %s, %d days, %d photos\n",
			draft.StartDate.Format("Jan 2, 2006"), draft.EndDate.Format("Jan 2, 2006"),
			len(draft.Days), draft.PhotoCount())
		if draft.AlbumID != "" {
			fmt.Printf("   Album: %s\n", draft.AlbumID)
		}

		if draftsVerbose {
			for _, day := range draft.Days {
				fmt.Printf("   Day %d (%s):\n", day.DayIndex+1, day.Date.Format("Jan 2"))
				for _, stop := range day.PlaceStops {
					location := "no location"
					if stop.RepresentativeCoordinate != nil {
						location = fmt.Sprintf("%.4f, %.4f",
							stop.RepresentativeCoordinate.Latitude,
							stop.RepresentativeCoordinate.Longitude)
					}
					fmt.Printf("     Stop %d: %d photos (%s)\n",
						stop.OrderIndex+1, len(stop.Photos), location)
				}
			}
		}
		fmt.Println()
	}

	unaccepted := 0
	for _, draft := range drafts {
		if !draft.Accepted {
			unaccepted++
		}
	}
	if unaccepted > 0 {
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("%d drafts awaiting review. Accept with 'tripsight accept <draft-id>'\n", unaccepted)
	}
	return nil
}
