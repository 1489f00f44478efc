// Package config loads environment settings and the optional YAML
// thresholds file. Precedence is command-line flag, then file, then
// built-in default; flags are applied by the cmd layer.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ekarhu/tripsight/internal/engine"
)

type Config struct {
	Immich     ImmichConfig
	Geocoder   GeocoderConfig
	Database   DatabaseConfig
	Thresholds Thresholds
}

type ImmichConfig struct {
	URL    string
	APIKey string
}

type GeocoderConfig struct {
	URL string // Nominatim-compatible base URL, e.g. https://nominatim.openstreetmap.org
}

type DatabaseConfig struct {
	Path string // SQLite file path (default tripsight.db)
}

// Thresholds are the clustering tunables, loadable from a YAML file.
type Thresholds struct {
	MaxTripRadiusKm       float64 `yaml:"max_trip_radius_km"`
	MaxGapDays            int     `yaml:"max_gap_days"`
	StopRadiusMeters      float64 `yaml:"stop_radius_meters"`
	GeocodeTimeoutSeconds float64 `yaml:"geocode_timeout_seconds"`
}

// DefaultThresholds mirrors the engine's built-in defaults.
func DefaultThresholds() Thresholds {
	params := engine.DefaultScanParams()
	return Thresholds{
		MaxTripRadiusKm:       params.MaxTripRadiusKm,
		MaxGapDays:            params.MaxGapDays,
		StopRadiusMeters:      params.StopRadiusMeters,
		GeocodeTimeoutSeconds: params.GeocodeTimeout.Seconds(),
	}
}

// ScanParams converts the thresholds to engine parameters.
func (t Thresholds) ScanParams() engine.ScanParams {
	return engine.ScanParams{
		MaxTripRadiusKm:  t.MaxTripRadiusKm,
		MaxGapDays:       t.MaxGapDays,
		StopRadiusMeters: t.StopRadiusMeters,
		GeocodeTimeout:   time.Duration(t.GeocodeTimeoutSeconds * float64(time.Second)),
	}
}

// Load reads connection settings from the environment and, when
// thresholdsPath is non-empty, merges the YAML thresholds file over the
// defaults. Missing keys in the file keep their defaults.
func Load(thresholdsPath string) (*Config, error) {
	cfg := &Config{
		Immich: ImmichConfig{
			URL:    os.Getenv("IMMICH_URL"),
			APIKey: os.Getenv("IMMICH_API_KEY"),
		},
		Geocoder: GeocoderConfig{
			URL: os.Getenv("GEOCODER_URL"),
		},
		Database: DatabaseConfig{
			Path: envOr("TRIPSIGHT_DB", "tripsight.db"),
		},
		Thresholds: DefaultThresholds(),
	}

	if thresholdsPath != "" {
		data, err := os.ReadFile(thresholdsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read thresholds file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg.Thresholds); err != nil {
			return nil, fmt.Errorf("failed to parse thresholds file: %w", err)
		}
		if err := cfg.Thresholds.validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (t Thresholds) validate() error {
	if t.MaxTripRadiusKm <= 0 {
		return fmt.Errorf("max_trip_radius_km must be positive, got %v", t.MaxTripRadiusKm)
	}
	if t.MaxGapDays < 0 {
		return fmt.Errorf("max_gap_days must not be negative, got %d", t.MaxGapDays)
	}
	if t.StopRadiusMeters <= 0 {
		return fmt.Errorf("stop_radius_meters must be positive, got %v", t.StopRadiusMeters)
	}
	if t.GeocodeTimeoutSeconds <= 0 {
		return fmt.Errorf("geocode_timeout_seconds must be positive, got %v", t.GeocodeTimeoutSeconds)
	}
	return nil
}

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
