package geocode

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/litmap/litmap/internal/model"
	"github.com/litmap/litmap/internal/store"
)

// Batch drains ungeocoded places from the store and resolves them through
// the chain, persisting each result as it lands so an interrupted run keeps
// its progress.
type Batch struct {
	store    *store.Store
	geocoder *Geocoder
	progress func(name string, result Result) // Optional per-place callback
}

// NewBatch creates a batch geocoding run.
func NewBatch(s *store.Store, g *Geocoder) *Batch {
	return &Batch{store: s, geocoder: g}
}

// OnProgress registers a callback invoked after each place is resolved.
func (b *Batch) OnProgress(fn func(name string, result Result)) {
	b.progress = fn
}

// Run geocodes up to limit unresolved places (0 = all). Individual failures
// are counted, not fatal; only storage errors abort the run.
func (b *Batch) Run(ctx context.Context, limit int) (*model.GeocodeReport, error) {
	places, err := b.store.UnresolvedPlaces(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load unresolved places: %w", err)
	}

	report := &model.GeocodeReport{}
	for _, p := range places {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := b.geocoder.Resolve(ctx, p.CanonicalName, p.Type)
		report.Processed++

		if !result.Found {
			slog.Warn("place not resolved", "name", p.CanonicalName, "attempted", result.Attempted)
			report.NotFound++
			if b.progress != nil {
				b.progress(p.CanonicalName, result)
			}
			continue
		}

		err := b.store.UpdatePlaceCoordinates(ctx, p.ID, result.Latitude, result.Longitude, result.Confidence, result.Source)
		if err != nil {
			return report, fmt.Errorf("persist coordinates for %q: %w", p.CanonicalName, err)
		}
		report.Resolved++

		if b.progress != nil {
			b.progress(p.CanonicalName, result)
		}
	}
	return report, nil
}
