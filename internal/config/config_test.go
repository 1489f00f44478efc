package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeThresholds(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 150.0, cfg.Thresholds.MaxTripRadiusKm)
	assert.Equal(t, 2, cfg.Thresholds.MaxGapDays)
	assert.Equal(t, 300.0, cfg.Thresholds.StopRadiusMeters)
	assert.Equal(t, "tripsight.db", cfg.Database.Path)
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("IMMICH_URL", "https://photos.example.com")
	t.Setenv("IMMICH_API_KEY", "secret")
	t.Setenv("TRIPSIGHT_DB", "/tmp/custom.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://photos.example.com", cfg.Immich.URL)
	assert.Equal(t, "secret", cfg.Immich.APIKey)
	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
}

func TestLoadThresholdsFile(t *testing.T) {
	path := writeThresholds(t, "max_trip_radius_km: 200\nstop_radius_meters: 450\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	// File values win, unlisted keys keep their defaults.
	assert.Equal(t, 200.0, cfg.Thresholds.MaxTripRadiusKm)
	assert.Equal(t, 450.0, cfg.Thresholds.StopRadiusMeters)
	assert.Equal(t, 2, cfg.Thresholds.MaxGapDays)
}

func TestLoadThresholdsFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadThresholdsInvalidYAML(t *testing.T) {
	path := writeThresholds(t, "max_trip_radius_km: [not a number\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadThresholdsRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"zero radius":      "max_trip_radius_km: 0\n",
		"negative gap":     "max_gap_days: -1\n",
		"zero stop radius": "stop_radius_meters: 0\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeThresholds(t, content))
			assert.Error(t, err)
		})
	}
}

func TestScanParamsConversion(t *testing.T) {
	thresholds := Thresholds{
		MaxTripRadiusKm:       100,
		MaxGapDays:            1,
		StopRadiusMeters:      250,
		GeocodeTimeoutSeconds: 2.5,
	}
	params := thresholds.ScanParams()

	assert.Equal(t, 100.0, params.MaxTripRadiusKm)
	assert.Equal(t, 1, params.MaxGapDays)
	assert.Equal(t, 250.0, params.StopRadiusMeters)
	assert.Equal(t, 2500*time.Millisecond, params.GeocodeTimeout)
}
