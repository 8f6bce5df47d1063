// Package snapshot builds the per-location forecast and gear snapshot that the
// dashboard reads.
package snapshot

import (
	"context"
	"sort"

	"github.com/i474232898/smartpack/internal/forecast"
	"github.com/i474232898/smartpack/internal/gear"
)

// Entry is the snapshot record for one location.
type Entry struct {
	Latitude        float64           `json:"latitude"`
	Longitude       float64           `json:"longitude"`
	Forecast        []forecast.Period `json:"forecast"`
	RecommendedGear []string          `json:"recommended_gear"`
	Warnings        []string          `json:"warnings"`
}

// Snapshot maps location names to their entry. Every key is the name of a
// location from the list the snapshot was built from.
type Snapshot map[string]Entry

// NewEntry assembles the record for loc.
func NewEntry(loc forecast.Location, periods []forecast.Period, set gear.GearSet) Entry {
	return Entry{
		Latitude:        loc.Latitude,
		Longitude:       loc.Longitude,
		Forecast:        periods,
		RecommendedGear: set.Items(),
		Warnings:        set.Warnings(),
	}
}

// Names returns the location names in the snapshot, sorted.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Writer persists a complete snapshot. Implementations replace any previous
// snapshot wholesale.
type Writer interface {
	Write(ctx context.Context, snap Snapshot) error
}

// Reader loads the last persisted snapshot.
type Reader interface {
	Read(ctx context.Context) (Snapshot, error)
}
