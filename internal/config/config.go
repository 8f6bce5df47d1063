package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/smartpack/internal/forecast"
	"github.com/i474232898/smartpack/internal/forecast/nws"
)

type AppConfig struct {
	// Reference location list.
	LocationsFile string
	Locations     []forecast.Location

	// SnapshotFile is where the batch job writes and the dashboard reads.
	SnapshotFile string

	// National Weather Service client.
	NWSBaseURL    string
	NWSUserAgent  string
	NWSMaxRetries int
	HTTPTimeout   time.Duration

	// FetchDelay is slept between locations during a batch run.
	FetchDelay time.Duration

	// FetchInterval controls how often the batch job runs.
	FetchInterval time.Duration
	RunOnStart    bool

	// Live forecast lookups from the dashboard API.
	LiveRateLimit float64 // requests per second
	LiveRateBurst int
	LiveMaxWait   time.Duration // longest wait for a rate limiter token

	// Optional S3 publication of the snapshot.
	S3Bucket string
	S3Key    string

	Port string
	Env  string
}

// Load reads configuration from environment with sensible defaults and loads
// the reference location list it points to.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.LocationsFile = getenvDefault("LOCATIONS_FILE", "locations.yaml")
	cfg.SnapshotFile = getenvDefault("SNAPSHOT_FILE", "weekly_forecasts.json")

	cfg.NWSBaseURL = getenvDefault("NWS_BASE_URL", nws.DefaultBaseURL)
	cfg.NWSUserAgent = getenvDefault("NWS_USER_AGENT", nws.DefaultUserAgent)
	cfg.NWSMaxRetries = getenvInt("NWS_MAX_RETRIES", 0)
	if cfg.NWSMaxRetries < 0 {
		return nil, fmt.Errorf("invalid NWS_MAX_RETRIES: %d", cfg.NWSMaxRetries)
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchDelay, err = getenvDuration("FETCH_DELAY", "2s"); err != nil {
		return nil, err
	}
	// Weekly, like the snapshot file name says.
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "168h"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval == 0 {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: must be positive")
	}
	if cfg.RunOnStart, err = getenvBool("RUN_ON_START", true); err != nil {
		return nil, err
	}

	if cfg.LiveRateLimit, err = getenvFloat("LIVE_RATE_LIMIT", 1); err != nil {
		return nil, err
	}
	cfg.LiveRateBurst = getenvInt("LIVE_RATE_BURST", 2)
	if cfg.LiveMaxWait, err = getenvDuration("LIVE_MAX_WAIT", "2s"); err != nil {
		return nil, err
	}

	cfg.S3Bucket = os.Getenv("SNAPSHOT_S3_BUCKET")
	cfg.S3Key = getenvDefault("SNAPSHOT_S3_KEY", "snapshots/weekly_forecasts.json")

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.Env = getenvDefault("APP_ENV", "production")

	locs, err := LoadLocations(cfg.LocationsFile)
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
