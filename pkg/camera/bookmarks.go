// pkg/camera/bookmarks.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package camera

import (
	"fmt"

	"github.com/brunoga/deep"
)

// Bookmark slots live in [0,NumBookmarkSlots); out-of-range slot numbers
// are silently ignored for all operations since they mostly arrive from
// keyboard-shortcut edge cases.

func validBookmarkSlot(slot int) bool {
	return slot >= 0 && slot < NumBookmarkSlots
}

// SaveBookmark stores the active camera in the given slot of the current
// airport's bookmark map.
func (s *Store) SaveBookmark(slot int, name string) {
	if !validBookmarkSlot(slot) {
		return
	}

	s.mu.Lock()
	if s.currentAirport == "" {
		s.mu.Unlock()
		return
	}
	i := s.activeIndexLocked()
	if i < 0 {
		s.mu.Unlock()
		return
	}

	cam := s.viewports[i].Camera
	if name == "" {
		name = fmt.Sprintf("Bookmark %d", slot)
	}
	s.ensureConfigLocked(s.currentAirport).Bookmarks[slot] = &Bookmark{
		Name:            name,
		ViewMode:        cam.ViewMode,
		Heading:         cam.Heading,
		Pitch:           cam.Pitch,
		FOV:             cam.FOV,
		TopdownAltitude: cam.TopdownAltitude,
		PositionOffset:  cam.PositionOffset,
	}
	s.mu.Unlock()

	s.committed(false)
}

// LoadBookmark restores a saved bookmark into the active viewport; any
// active follow session is ended (without restoring the pre-follow
// camera).  It reports whether a bookmark was present in the slot; camera
// state is untouched otherwise.
func (s *Store) LoadBookmark(slot int) bool {
	if !validBookmarkSlot(slot) {
		return false
	}

	s.mu.Lock()
	cfg, ok := s.airportConfigs[s.currentAirport]
	if !ok {
		s.mu.Unlock()
		return false
	}
	bm, ok := cfg.Bookmarks[slot]
	if !ok || bm == nil {
		s.mu.Unlock()
		return false
	}
	b := *bm
	s.mu.Unlock()

	s.updateActive(func(c *CameraState) {
		c.FollowingCallsign = ""
		c.PreFollow = nil
		c.LookAt = nil
		c.ViewMode = b.ViewMode
		c.Heading = b.Heading
		c.Pitch = b.Pitch
		c.FOV = b.FOV
		c.TopdownAltitude = b.TopdownAltitude
		c.PositionOffset = b.PositionOffset
	})
	return true
}

func (s *Store) DeleteBookmark(slot int) {
	if !validBookmarkSlot(slot) {
		return
	}

	s.mu.Lock()
	if cfg, ok := s.airportConfigs[s.currentAirport]; ok {
		delete(cfg.Bookmarks, slot)
	}
	s.mu.Unlock()

	s.committed(false)
}

// RenameBookmark changes a bookmark's display name; the camera snapshot
// is never touched.
func (s *Store) RenameBookmark(slot int, name string) {
	if !validBookmarkSlot(slot) || name == "" {
		return
	}

	s.mu.Lock()
	changed := false
	if cfg, ok := s.airportConfigs[s.currentAirport]; ok {
		if bm, ok := cfg.Bookmarks[slot]; ok && bm != nil {
			bm.Name = name
			changed = true
		}
	}
	s.mu.Unlock()

	if changed {
		s.committed(false)
	}
}

// Bookmarks returns a copy of the current airport's bookmark map.
func (s *Store) Bookmarks() map[int]Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]Bookmark)
	if cfg, ok := s.airportConfigs[s.currentAirport]; ok {
		for slot, bm := range cfg.Bookmarks {
			if bm != nil {
				out[slot] = deep.MustCopy(*bm)
			}
		}
	}
	return out
}
