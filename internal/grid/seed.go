package grid

import (
	"context"
	"log"

	"github.com/MikaLeppala/uk-rail-departures/internal/geolocate"
	"github.com/MikaLeppala/uk-rail-departures/internal/stations"
)

// FallbackLayout is the grid used when no layout is persisted and the
// host's location cannot be resolved.
var FallbackLayout = [][]string{
	{"KGX", "EUS"},
	{"PAD", "WAT"},
}

// SeedResult is the outcome of startup grid seeding.
type SeedResult struct {
	Layout [][]string

	// Origin is the resolved coordinate, valid only when Located is true.
	Origin  geolocate.Point
	Located bool
}

// Seed decides the initial grid. A persisted layout short-circuits
// everything: it is loaded as-is and no location request is made.
// Otherwise the host is located once; on success the grid is seeded
// with the two nearest stations and the two nearest London terminals,
// on failure with FallbackLayout.
func Seed(ctx context.Context, store Store, dir *stations.Directory, locator geolocate.Locator) SeedResult {
	if store != nil {
		if layout, err := store.LoadLayout(); err == nil {
			log.Printf("INFO: restored persisted grid with %d rows", len(layout))
			return SeedResult{Layout: layout}
		}
	}

	if locator == nil {
		log.Printf("INFO: no locator available; seeding default grid")
		return SeedResult{Layout: copyGrid(FallbackLayout)}
	}

	origin, err := locator.Locate(ctx)
	if err != nil {
		log.Printf("INFO: location unavailable (%v); seeding default grid", err)
		return SeedResult{Layout: copyGrid(FallbackLayout)}
	}

	nearest := dir.Nearest(origin.Lat, origin.Lon, 2)
	terminals := dir.NearestTerminals(origin.Lat, origin.Lon, 2)
	if len(nearest) < 2 || len(terminals) < 2 {
		// Directory too small to seed both rows; not expected with the
		// built-in set.
		return SeedResult{Layout: copyGrid(FallbackLayout), Origin: origin, Located: true}
	}

	layout := [][]string{
		{nearest[0].Code, nearest[1].Code},
		{terminals[0].Code, terminals[1].Code},
	}
	log.Printf("INFO: seeded grid from location %.4f,%.4f", origin.Lat, origin.Lon)
	return SeedResult{Layout: layout, Origin: origin, Located: true}
}
