// pkg/camera/airport.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package camera

import (
	"strings"

	"github.com/towerview3d/towerview/pkg/event"

	"github.com/brunoga/deep"
)

// SetCurrentAirport switches the store to another airport: the outgoing
// airport's live viewports are snapshotted into its config (with
// bookmarks, defaults and datablock position carried forward), then the
// incoming airport's saved config is restored, or a fresh main viewport
// is synthesized when none exists.
func (s *Store) SetCurrentAirport(icao string) {
	icao = strings.ToUpper(strings.TrimSpace(icao))
	if icao == "" {
		return
	}

	s.mu.Lock()
	if icao == s.currentAirport {
		s.mu.Unlock()
		return
	}

	if s.currentAirport != "" {
		s.snapshotAirportLocked(s.currentAirport)
	}
	s.currentAirport = icao

	if cfg, ok := s.airportConfigs[icao]; ok && len(cfg.Viewports) > 0 {
		vps, active := normalizeMainViewport(deep.MustCopy(cfg.Viewports), cfg.ActiveID)
		for i := range vps {
			vps[i].Camera = vps[i].Camera.stripFollow()
			enforceModeInvariant(&vps[i].Camera)
		}
		s.viewports = vps
		s.activeID = active
	} else {
		cam := DefaultCameraState()
		if s.airports != nil {
			if heading, alt, ok := s.airports.DefaultView(icao); ok {
				cam.Heading = heading
				if alt > 0 {
					cam.TopdownAltitude = alt
				}
			}
		}
		cam.OrbitDistance = s.orbit.Distance
		cam.OrbitHeading = s.orbit.Heading
		cam.OrbitPitch = s.orbit.Pitch
		enforceModeInvariant(&cam)
		s.viewports = []Viewport{{ID: MainViewportID, Layout: fullFrameLayout(), Camera: cam}}
		s.activeID = MainViewportID
	}
	s.mu.Unlock()

	s.events.Post(event.Event{Type: event.AirportChangedEvent, ICAO: icao})
	s.committed(true)
}

// SaveCurrentAirportConfig snapshots the live viewports into the current
// airport's config; the auto-save timer calls this periodically.
func (s *Store) SaveCurrentAirportConfig() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentAirport == "" {
		return
	}
	s.snapshotAirportLocked(s.currentAirport)
}

// snapshotAirportLocked writes the live viewport list (follow state
// stripped) into the airport's config.  It is a read-before-write merge:
// bookmarks, saved defaults and the datablock position already present in
// the config are explicitly preserved.
func (s *Store) snapshotAirportLocked(icao string) {
	cfg := s.ensureConfigLocked(icao)

	vps := deep.MustCopy(s.viewports)
	for i := range vps {
		vps[i].Camera = vps[i].Camera.stripFollow()
	}
	cfg.Viewports = vps
	cfg.ActiveID = s.activeID
}

func (s *Store) ensureConfigLocked(icao string) *AirportConfig {
	cfg, ok := s.airportConfigs[icao]
	if !ok {
		cfg = &AirportConfig{
			Bookmarks:         make(map[int]*Bookmark),
			DatablockPosition: DefaultDatablockPosition,
		}
		s.airportConfigs[icao] = cfg
	}
	if cfg.Bookmarks == nil {
		cfg.Bookmarks = make(map[int]*Bookmark)
	}
	return cfg
}

// normalizeMainViewport fixes up older persisted data where the main
// viewport carried a random identity: the full-frame viewport (or the
// first one) is renamed to the fixed "main" id and the active-id
// reference remapped accordingly.
func normalizeMainViewport(vps []Viewport, activeID string) ([]Viewport, string) {
	if len(vps) == 0 {
		return []Viewport{{ID: MainViewportID, Layout: fullFrameLayout(), Camera: DefaultCameraState()}},
			MainViewportID
	}

	mainIdx := -1
	for i, vp := range vps {
		if vp.ID == MainViewportID {
			mainIdx = i
			break
		}
	}
	if mainIdx < 0 {
		mainIdx = 0
		for i, vp := range vps {
			if vp.Layout.isFullFrame() {
				mainIdx = i
				break
			}
		}
		if activeID == vps[mainIdx].ID {
			activeID = MainViewportID
		}
		vps[mainIdx].ID = MainViewportID
	}
	vps[mainIdx].Layout = fullFrameLayout()

	valid := false
	for _, vp := range vps {
		if vp.ID == activeID {
			valid = true
			break
		}
	}
	if !valid {
		activeID = MainViewportID
	}
	return vps, activeID
}

///////////////////////////////////////////////////////////////////////////
// view-mode-scoped defaults

// SaveCurrentAsDefault saves the active camera as the current airport's
// default for the current view mode only: saving while in 3D leaves the
// top-down default alone and vice versa.
func (s *Store) SaveCurrentAsDefault() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentAirport == "" {
		return
	}
	i := s.activeIndexLocked()
	if i < 0 {
		return
	}

	cam := s.viewports[i].Camera
	cfg := s.ensureConfigLocked(s.currentAirport)
	if cam.ViewMode == ViewTopdown {
		cfg.Default2D = &Default2D{
			Heading:         cam.Heading,
			TopdownAltitude: cam.TopdownAltitude,
		}
	} else {
		cfg.Default3D = &Default3D{
			Heading:        cam.Heading,
			Pitch:          cam.Pitch,
			FOV:            cam.FOV,
			PositionOffset: cam.PositionOffset,
		}
	}
}

// ResetToDefault restores the saved default for the current view mode; if
// no default has been saved for that mode it falls through to the app
// defaults rather than erroring.
func (s *Store) ResetToDefault() {
	var d3 *Default3D
	var d2 *Default2D
	var legacy *CameraState

	s.mu.Lock()
	if cfg, ok := s.airportConfigs[s.currentAirport]; ok {
		d3, d2, legacy = cfg.Default3D, cfg.Default2D, cfg.LegacyDefault
	}
	s.mu.Unlock()

	mode := s.ActiveCamera().ViewMode
	switch {
	case mode == ViewTopdown && d2 != nil:
		s.updateActive(func(c *CameraState) {
			c.Heading = d2.Heading
			c.TopdownAltitude = d2.TopdownAltitude
		})
	case mode != ViewTopdown && d3 != nil:
		s.updateActive(func(c *CameraState) {
			c.Heading = d3.Heading
			c.Pitch = d3.Pitch
			c.FOV = d3.FOV
			c.PositionOffset = d3.PositionOffset
		})
	case legacy != nil:
		s.updateActive(func(c *CameraState) {
			saved := legacy.stripFollow()
			saved.ViewMode = c.ViewMode
			*c = saved
		})
	default:
		s.ResetToAppDefault()
	}
}

// ResetToAppDefault restores the app-wide defaults for the current view
// mode, seeded with any externally supplied per-airport override data.
func (s *Store) ResetToAppDefault() {
	var heading, alt float32
	var haveOverride bool
	if s.airports != nil {
		heading, alt, haveOverride = s.airports.DefaultView(s.CurrentAirport())
	}

	s.updateActive(func(c *CameraState) {
		c.PositionOffset = PositionOffset{}
		if haveOverride {
			c.Heading = heading
		} else {
			c.Heading = 0
		}
		if c.ViewMode == ViewTopdown {
			c.FOV = DefaultFOVTopdown
			if haveOverride && alt > 0 {
				c.TopdownAltitude = alt
			} else {
				c.TopdownAltitude = DefaultTopdownAltitude
			}
		} else {
			c.Pitch = DefaultPitch3D
			c.FOV = DefaultFOV3D
		}
	})
}

///////////////////////////////////////////////////////////////////////////
// datablock position

// SetDatablockPosition sets the numpad-style (1-9) datablock placement
// for the current airport; out-of-range values are ignored.
func (s *Store) SetDatablockPosition(pos int) {
	if pos < DatablockPositionMin || pos > DatablockPositionMax {
		s.lg.Debugf("%d: ignoring out of range datablock position", pos)
		return
	}

	s.mu.Lock()
	if s.currentAirport == "" {
		s.mu.Unlock()
		return
	}
	s.ensureConfigLocked(s.currentAirport).DatablockPosition = pos
	s.mu.Unlock()

	s.committed(false)
}

func (s *Store) DatablockPosition() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg, ok := s.airportConfigs[s.currentAirport]; ok && cfg.DatablockPosition != 0 {
		return cfg.DatablockPosition
	}
	return DefaultDatablockPosition
}
