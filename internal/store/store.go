// Package store persists and caches snapshots.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/i474232898/smartpack/internal/snapshot"
)

var (
	// ErrNotFound is returned when no snapshot, or no entry for a location, is available.
	ErrNotFound = errors.New("snapshot data not found")
)

// Tee returns a Writer that writes to each writer in order, stopping at the
// first failure.
func Tee(writers ...snapshot.Writer) snapshot.Writer {
	return teeWriter(writers)
}

type teeWriter []snapshot.Writer

func (t teeWriter) Write(ctx context.Context, snap snapshot.Snapshot) error {
	for i, w := range t {
		if err := w.Write(ctx, snap); err != nil {
			return fmt.Errorf("snapshot writer %d: %w", i, err)
		}
	}
	return nil
}
