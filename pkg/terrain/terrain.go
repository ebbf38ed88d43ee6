// pkg/terrain/terrain.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	"context"
	"fmt"
	"sync"

	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/util"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Sampler provides terrain/ellipsoidal height at a geographic point;
// implementations typically query the geospatial engine's terrain tiles.
type Sampler interface {
	SampleElevation(ctx context.Context, lat, lon float64) (float64, error)
}

// cells quantize sample positions to ~11m so nearby requests share cache
// entries.
type cellKey struct {
	lat, lon int64
}

func makeCellKey(lat, lon float64) cellKey {
	return cellKey{lat: int64(lat * 1e4), lon: int64(lon * 1e4)}
}

// OffsetResolver resolves the terrain offset for the active reference
// frame: the difference between the sampled terrain height and the
// reference MSL elevation at the base position.  Resolution is
// asynchronous; Offset returns the last resolved value and defaults to 0
// until resolution completes or when sampling fails.
//
// Each Resolve call advances a generation counter and results from stale
// generations are discarded, so two rapid airport switches can't let an
// older, slower sample clobber the newer one.
type OffsetResolver struct {
	mu     sync.Mutex
	gen    uint64
	offset float64

	sampler Sampler
	cache   *lru.Cache[cellKey, float64]
	sf      singleflight.Group
	lg      *log.Logger
}

func NewOffsetResolver(sampler Sampler, lg *log.Logger) *OffsetResolver {
	cache, _ := lru.New[cellKey, float64](256)
	return &OffsetResolver{
		sampler: sampler,
		cache:   cache,
		lg:      lg,
	}
}

// Offset returns the most recently resolved terrain offset in meters; 0
// while no sample has resolved.  There is no blocking wait.
func (r *OffsetResolver) Offset() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offset
}

// Resolve starts an asynchronous sample for a new base position.  The
// cached offset is reset to 0 immediately so consumers never apply a
// stale correction from the previous base.
func (r *OffsetResolver) Resolve(ctx context.Context, lat, lon, refElevationMSL float64) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.offset = 0
	r.mu.Unlock()

	if r.sampler == nil {
		return
	}

	go func() {
		elev, err := r.sample(ctx, lat, lon)

		r.mu.Lock()
		defer r.mu.Unlock()
		if gen != r.gen {
			r.lg.Debugf("discarding stale terrain sample for generation %d (current %d)", gen, r.gen)
			return
		}
		if err != nil {
			r.lg.Warnf("terrain sample at (%f, %f) failed: %v", lat, lon, err)
			r.offset = 0
			return
		}
		r.offset = elev - refElevationMSL
	}()
}

func (r *OffsetResolver) sample(ctx context.Context, lat, lon float64) (float64, error) {
	key := makeCellKey(lat, lon)
	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}

	// Collapse concurrent requests for the same cell.
	v, err, _ := r.sf.Do(fmt.Sprintf("%d/%d", key.lat, key.lon), func() (interface{}, error) {
		cachePath := fmt.Sprintf("terrain/%d_%d", key.lat, key.lon)

		var elev float64
		if _, err := util.CacheRetrieveObject(cachePath, &elev); err == nil {
			return elev, nil
		}

		elev, err := r.sampler.SampleElevation(ctx, lat, lon)
		if err != nil {
			return 0.0, err
		}

		if err := util.CacheStoreObject(cachePath, elev); err != nil {
			r.lg.Debugf("%s: unable to cache terrain sample: %v", cachePath, err)
		}
		return elev, nil
	})
	if err != nil {
		return 0, err
	}

	elev := v.(float64)
	r.cache.Add(key, elev)
	return elev, nil
}
