package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ekarhu/tripsight/internal/config"
)

var (
	immichURL      string
	immichAPIKey   string
	geocoderURL    string
	dbPath         string
	thresholdsFile string
)

var rootCmd = &cobra.Command{
	Use:   "tripsight",
	Short: "Detect trips and place stops in your photo library",
	Long: `Tripsight scans a photo library for trips: multi-day runs of photos taken
away from your home neighborhood, broken down into ordered place stops per
day. Detected trips are stored as drafts for review; accepting a draft
claims its photos so later scans only surface new trips.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Load .env file if it exists
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&immichURL, "immich-url", os.Getenv("IMMICH_URL"), "Immich instance URL (can be set via IMMICH_URL env var)")
	rootCmd.PersistentFlags().StringVar(&immichAPIKey, "api-key", os.Getenv("IMMICH_API_KEY"), "Immich API key (can be set via IMMICH_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&geocoderURL, "geocoder-url", os.Getenv("GEOCODER_URL"), "Nominatim-compatible reverse geocoder base URL (optional)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to local SQLite database (default ./tripsight.db)")
	rootCmd.PersistentFlags().StringVar(&thresholdsFile, "config", "", "Path to YAML thresholds file (optional)")
}

// loadConfig merges the environment, the optional thresholds file and the
// persistent flags. Flags win over the file, the file over defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(thresholdsFile)
	if err != nil {
		return nil, err
	}
	if immichURL != "" {
		cfg.Immich.URL = immichURL
	}
	if immichAPIKey != "" {
		cfg.Immich.APIKey = immichAPIKey
	}
	if geocoderURL != "" {
		cfg.Geocoder.URL = geocoderURL
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

func requireImmich(cfg *config.Config) error {
	if cfg.Immich.URL == "" {
		return fmt.Errorf("immich-url is required (use --immich-url flag or IMMICH_URL env var)")
	}
	if cfg.Immich.APIKey == "" {
		return fmt.Errorf("api-key is required (use --api-key flag or IMMICH_API_KEY env var)")
	}
	return nil
}
