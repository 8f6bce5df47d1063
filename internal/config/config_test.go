package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const parksJSON = `[
  {"name": "Yosemite National Park", "latitude": 37.8651, "longitude": -119.5383},
  {"name": "Joshua Tree National Park", "latitude": 33.8734, "longitude": -115.9010}
]`

const parksYAML = `locations:
  - name: Sequoia National Park
    latitude: 36.4864
    longitude: -118.5658
`

func TestParseLocationsAcceptsJSONArray(t *testing.T) {
	locs, err := ParseLocations([]byte(parksJSON))
	if err != nil {
		t.Fatalf("ParseLocations failed: %v", err)
	}
	if len(locs) != 2 || locs[0].Name != "Yosemite National Park" || locs[1].Longitude != -115.901 {
		t.Fatalf("unexpected locations %+v", locs)
	}
}

func TestParseLocationsAcceptsMapping(t *testing.T) {
	locs, err := ParseLocations([]byte(parksYAML))
	if err != nil {
		t.Fatalf("ParseLocations failed: %v", err)
	}
	if len(locs) != 1 || locs[0].Latitude != 36.4864 {
		t.Fatalf("unexpected locations %+v", locs)
	}
}

func TestParseLocationsRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":          ``,
		"empty list":     `[]`,
		"missing name":   `[{"latitude": 1, "longitude": 2}]`,
		"bad latitude":   `[{"name": "North", "latitude": 91, "longitude": 0}]`,
		"bad longitude":  `[{"name": "East", "latitude": 0, "longitude": 181}]`,
		"duplicate name": `[{"name": "A", "latitude": 1, "longitude": 1}, {"name": "A", "latitude": 2, "longitude": 2}]`,
		"not a list":     `locations: 5`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseLocations([]byte(doc)); err == nil {
				t.Fatalf("expected error for %q", doc)
			}
		})
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parks.json")
	if err := os.WriteFile(path, []byte(parksJSON), 0o644); err != nil {
		t.Fatalf("write locations: %v", err)
	}

	t.Setenv("LOCATIONS_FILE", path)
	t.Setenv("FETCH_DELAY", "500ms")
	t.Setenv("RUN_ON_START", "false")
	t.Setenv("SNAPSHOT_S3_BUCKET", "smartpack-snapshots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(cfg.Locations))
	}
	if cfg.FetchDelay != 500*time.Millisecond {
		t.Fatalf("unexpected fetch delay %v", cfg.FetchDelay)
	}
	if cfg.RunOnStart {
		t.Fatal("expected RUN_ON_START override")
	}
	if cfg.FetchInterval != 168*time.Hour {
		t.Fatalf("unexpected default interval %v", cfg.FetchInterval)
	}
	if cfg.HTTPTimeout != 10*time.Second || cfg.NWSMaxRetries != 0 {
		t.Fatalf("unexpected client defaults: %v / %d", cfg.HTTPTimeout, cfg.NWSMaxRetries)
	}
	if cfg.LiveMaxWait != 2*time.Second {
		t.Fatalf("unexpected live max wait %v", cfg.LiveMaxWait)
	}
	if cfg.SnapshotFile != "weekly_forecasts.json" || cfg.S3Bucket != "smartpack-snapshots" {
		t.Fatalf("unexpected snapshot settings %q %q", cfg.SnapshotFile, cfg.S3Bucket)
	}
	if !strings.HasPrefix(cfg.NWSBaseURL, "https://api.weather.gov") {
		t.Fatalf("unexpected base url %q", cfg.NWSBaseURL)
	}
}

func TestLoadFailsWithoutLocations(t *testing.T) {
	t.Setenv("LOCATIONS_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing locations file")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parks.json")
	if err := os.WriteFile(path, []byte(parksJSON), 0o644); err != nil {
		t.Fatalf("write locations: %v", err)
	}
	t.Setenv("LOCATIONS_FILE", path)
	t.Setenv("FETCH_INTERVAL", "weekly")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "FETCH_INTERVAL") {
		t.Fatalf("expected FETCH_INTERVAL error, got %v", err)
	}
}

func TestLoadRejectsZeroInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parks.json")
	if err := os.WriteFile(path, []byte(parksJSON), 0o644); err != nil {
		t.Fatalf("write locations: %v", err)
	}
	t.Setenv("LOCATIONS_FILE", path)
	t.Setenv("FETCH_INTERVAL", "0s")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "FETCH_INTERVAL") {
		t.Fatalf("expected FETCH_INTERVAL error, got %v", err)
	}
}
