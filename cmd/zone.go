package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ekarhu/tripsight/internal/database"
	"github.com/ekarhu/tripsight/internal/models"
)

var (
	zoneName   string
	zoneLat    float64
	zoneLon    float64
	zoneRadius float64
)

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Manage the home neighborhood zone",
	Long: `The neighborhood zone is a circle around your home. Photos taken inside
it never count as travel, so everyday photos close to home do not turn
into trips.`,
}

var zoneSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the neighborhood zone",
	RunE:  runZoneSet,
}

var zoneShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured neighborhood zone",
	RunE:  runZoneShow,
}

var zoneClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the neighborhood zone",
	RunE:  runZoneClear,
}

func init() {
	rootCmd.AddCommand(zoneCmd)
	zoneCmd.AddCommand(zoneSetCmd, zoneShowCmd, zoneClearCmd)

	zoneSetCmd.Flags().StringVar(&zoneName, "name", "home", "Zone name")
	zoneSetCmd.Flags().Float64Var(&zoneLat, "lat", 0, "Zone center latitude")
	zoneSetCmd.Flags().Float64Var(&zoneLon, "lon", 0, "Zone center longitude")
	zoneSetCmd.Flags().Float64Var(&zoneRadius, "radius", 500, "Zone radius in meters")
	zoneSetCmd.MarkFlagRequired("lat")
	zoneSetCmd.MarkFlagRequired("lon")
}

func runZoneSet(cmd *cobra.Command, args []string) error {
	if zoneRadius <= 0 {
		return fmt.Errorf("radius must be positive, got %v", zoneRadius)
	}
	if zoneLat < -90 || zoneLat > 90 || zoneLon < -180 || zoneLon > 180 {
		return fmt.Errorf("invalid coordinates (%v, %v)", zoneLat, zoneLon)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	zone := models.NeighborhoodZone{
		Name:         zoneName,
		Center:       models.Coordinate{Latitude: zoneLat, Longitude: zoneLon},
		RadiusMeters: zoneRadius,
	}
	if err := db.SaveZone(zone); err != nil {
		return fmt.Errorf("failed to save zone: %w", err)
	}

	fmt.Printf("Zone set: %s (%.4f, %.4f, %.0fm radius)\n",
		zone.Name, zone.Center.Latitude, zone.Center.Longitude, zone.RadiusMeters)
	return nil
}

func runZoneShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
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
	if zone == nil {
		fmt.Println("No neighborhood zone configured. Use 'tripsight zone set' to add one.")
		return nil
	}

	fmt.Printf("Name:   %s\n", zone.Name)
	fmt.Printf("Center: %.4f, %.4f\n", zone.Center.Latitude, zone.Center.Longitude)
	fmt.Printf("Radius: %.0fm\n", zone.RadiusMeters)
	return nil
}

func runZoneClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.ClearZone(); err != nil {
		return fmt.Errorf("failed to clear zone: %w", err)
	}
	fmt.Println("Neighborhood zone cleared.")
	return nil
}
