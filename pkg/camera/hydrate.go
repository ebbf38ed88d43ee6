// pkg/camera/hydrate.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package camera

import (
	"github.com/brunoga/deep"
)

// Snapshot returns deep copies of the persisted-state fields: the
// per-airport config map, the current airport and the global orbit
// settings.  Live viewports are runtime-only and are not part of the
// snapshot (they are reconstructed from the per-airport config on load),
// but the current airport's config is refreshed from them first so the
// snapshot is self-consistent.
func (s *Store) Snapshot() (map[string]*AirportConfig, string, OrbitSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentAirport != "" {
		s.snapshotAirportLocked(s.currentAirport)
	}
	return deep.MustCopy(s.airportConfigs), s.currentAirport, s.orbit
}

// Hydrate installs previously persisted state.  If a current airport is
// set and has a saved config, its viewports are restored with the main
// viewport identity normalized for older persisted data.
func (s *Store) Hydrate(configs map[string]*AirportConfig, currentAirport string, orbit OrbitSettings) {
	s.mu.Lock()

	if configs != nil {
		s.airportConfigs = deep.MustCopy(configs)
	}
	if orbit.Distance > 0 {
		s.orbit = orbit
	}
	s.currentAirport = currentAirport

	if cfg, ok := s.airportConfigs[currentAirport]; ok && len(cfg.Viewports) > 0 {
		vps, active := normalizeMainViewport(deep.MustCopy(cfg.Viewports), cfg.ActiveID)
		for i := range vps {
			vps[i].Camera = vps[i].Camera.stripFollow()
			enforceModeInvariant(&vps[i].Camera)
		}
		s.viewports = vps
		s.activeID = active
	}

	s.mu.Unlock()
	s.committed(true)
}

// MergeAirportFields merges host-side per-airport fields into the local
// config: defaults and datablock position are taken from the host when
// present, bookmarks slot-wise without ever overwriting a local slot that
// is already set.
func (s *Store) MergeAirportFields(icao string, host *AirportConfig) {
	if host == nil || icao == "" {
		return
	}

	s.mu.Lock()
	cfg := s.ensureConfigLocked(icao)

	if host.Default3D != nil {
		cfg.Default3D = deep.MustCopy(host.Default3D)
	}
	if host.Default2D != nil {
		cfg.Default2D = deep.MustCopy(host.Default2D)
	}
	if host.LegacyDefault != nil && cfg.LegacyDefault == nil {
		cfg.LegacyDefault = deep.MustCopy(host.LegacyDefault)
	}
	if host.DatablockPosition != 0 {
		cfg.DatablockPosition = host.DatablockPosition
	}
	for slot, bm := range host.Bookmarks {
		if bm == nil || !validBookmarkSlot(slot) {
			continue
		}
		if _, exists := cfg.Bookmarks[slot]; !exists {
			cfg.Bookmarks[slot] = deep.MustCopy(bm)
		}
	}
	s.mu.Unlock()
}

// MergeLegacyBookmarks folds bookmarks from the old single-viewport
// camera store into an airport's bookmark map, never overwriting
// bookmarks already present at the destination slot.
func (s *Store) MergeLegacyBookmarks(icao string, bookmarks map[int]*Bookmark) {
	if icao == "" || len(bookmarks) == 0 {
		return
	}

	s.mu.Lock()
	cfg := s.ensureConfigLocked(icao)
	for slot, bm := range bookmarks {
		if bm == nil || !validBookmarkSlot(slot) {
			continue
		}
		if _, exists := cfg.Bookmarks[slot]; !exists {
			cfg.Bookmarks[slot] = deep.MustCopy(bm)
		}
	}
	s.mu.Unlock()
}
