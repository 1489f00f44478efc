package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekarhu/tripsight/internal/database"
	"github.com/ekarhu/tripsight/internal/immich"
)

var acceptCreateAlbum bool

var acceptCmd = &cobra.Command{
	Use:   "accept <draft-id>",
	Short: "Accept a trip draft and claim its photos",
	Long: `Marks a draft as accepted and claims its photo IDs. Claimed photos are
skipped by later scans, so accepting a trip makes subsequent scans only
surface new trips. Optionally creates an album in the photo library.`,
	Args: cobra.ExactArgs(1),
	RunE: runAccept,
}

func init() {
	rootCmd.AddCommand(acceptCmd)
	acceptCmd.Flags().BoolVar(&acceptCreateAlbum, "create-album", false, "Create an album for the trip in the photo library")
}

func runAccept(cmd *cobra.Command, args []string) error {
	draftID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if acceptCreateAlbum {
		if err := requireImmich(cfg); err != nil {
			return err
		}
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	draft, err := db.GetDraft(draftID)
	if err != nil {
		return err
	}

	claimed, err := db.AcceptDraft(draftID)
	if err != nil {
		return fmt.Errorf("failed to accept draft: %w", err)
	}
	fmt.Printf("Accepted: %s\n", draft.Name)
	fmt.Printf("Claimed %d photos\n", len(claimed))

	if acceptCreateAlbum {
		if draft.AlbumID != "" {
			fmt.Printf("Album already exists: %s\n", draft.AlbumID)
			return nil
		}

		client := immich.NewClient(cfg.Immich.URL, cfg.Immich.APIKey)
		description := fmt.Sprintf("%s - %s, %d days",
			draft.StartDate.Format("Jan 2, 2006"), draft.EndDate.Format("Jan 2, 2006"), len(draft.Days))

		albumID, err := client.CreateAlbum(cmd.Context(), draft.Name, description)
		if err != nil {
			return fmt.Errorf("failed to create album: %w", err)
		}
		if err := client.AddAssetsToAlbum(cmd.Context(), albumID, draft.PhotoIDs()); err != nil {
			return fmt.Errorf("failed to add photos to album: %w", err)
		}
		if err := db.UpdateDraftAlbumID(draftID, albumID); err != nil {
			return fmt.Errorf("failed to record album id: %w", err)
		}
		fmt.Printf("Created album %s with %d photos\n", albumID, draft.PhotoCount())
	}

	return nil
}
