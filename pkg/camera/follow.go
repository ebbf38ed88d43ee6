// pkg/camera/follow.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package camera

import (
	"github.com/towerview3d/towerview/pkg/event"
	"github.com/towerview3d/towerview/pkg/math"
)

// FollowAircraft begins (or re-targets) a tower-follow session on the
// active viewport: the camera stays at the tower and tracks the aircraft.
// An explicit tower-follow request while top-down is active forces the
// view back to 3D.
func (s *Store) FollowAircraft(callsign string) {
	s.follow(callsign, FollowTower)
}

// FollowAircraftInOrbit begins (or re-targets) an orbit-follow session:
// the camera orbits the aircraft using the viewport's orbit geometry.
func (s *Store) FollowAircraftInOrbit(callsign string) {
	s.follow(callsign, FollowOrbit)
}

func (s *Store) follow(callsign string, mode FollowMode) {
	if callsign == "" {
		return
	}

	s.updateActive(func(c *CameraState) {
		if c.FollowingCallsign == "" {
			// First entry into a follow session: snapshot the state that
			// following overrides.  Re-targets keep the original snapshot
			// and the current zoom so the camera doesn't jump.
			c.PreFollow = &PreFollowState{
				Heading:  c.Heading,
				Pitch:    c.Pitch,
				FOV:      c.FOV,
				ViewMode: c.ViewMode,
			}
			c.FollowZoom = 1
		}
		c.FollowingCallsign = callsign

		if mode == FollowTower && c.ViewMode == ViewTopdown {
			c.ViewMode = View3D
		}
		c.FollowMode = mode
		c.LookAt = nil
	})

	// Following re-scopes the traffic feed around the target; this is the
	// one camera operation with a documented side effect outside the
	// store.
	s.pushReferencePosition(callsign)
}

// pushReferencePosition publishes the followed aircraft's geographic
// position so the traffic feed can re-filter what's loaded.
func (s *Store) pushReferencePosition(callsign string) {
	if s.aircraft == nil {
		return
	}
	if lat, lon, ok := s.aircraft.AircraftPosition(callsign); ok {
		s.events.Post(event.Event{
			Type:     event.ReferencePositionEvent,
			Callsign: callsign,
			Lat:      lat,
			Lon:      lon,
		})
	}
}

// StopFollowing ends the follow session.  With restoreCamera set, the
// heading/pitch/FOV saved at session start are restored; the snapshot is
// cleared either way.
func (s *Store) StopFollowing(restoreCamera bool) {
	s.updateActive(func(c *CameraState) {
		if c.FollowingCallsign == "" && c.PreFollow == nil {
			return
		}
		if restoreCamera && c.PreFollow != nil {
			c.Heading = c.PreFollow.Heading
			c.Pitch = c.PreFollow.Pitch
			c.FOV = c.PreFollow.FOV
		}
		c.FollowingCallsign = ""
		c.PreFollow = nil
		c.FollowZoom = 1
	})
}

// SetFollowMode switches between tower and orbit follow.  The
// topdown/tower exclusion is resolved by switching the other field:
// requesting tower while top-down flips the view to 3D rather than
// rejecting the call.
func (s *Store) SetFollowMode(mode FollowMode) {
	if mode != FollowTower && mode != FollowOrbit {
		s.lg.Debugf("%s: ignoring invalid follow mode", mode)
		return
	}
	s.updateActive(func(c *CameraState) {
		if mode == FollowTower && c.ViewMode == ViewTopdown {
			c.ViewMode = View3D
		}
		c.FollowMode = mode
	})
}

func (s *Store) ToggleFollowMode() {
	if s.ActiveCamera().FollowMode == FollowTower {
		s.SetFollowMode(FollowOrbit)
	} else {
		s.SetFollowMode(FollowTower)
	}
}

func (s *Store) SetFollowZoom(zoom float32) {
	s.updateActive(func(c *CameraState) {
		c.FollowZoom = zoom
	})
}

// Orbit geometry setters write through to the global orbit settings so
// the last-used values seed future viewports and airports.

func (s *Store) SetOrbitDistance(d float32) {
	s.updateActive(func(c *CameraState) {
		c.OrbitDistance = d
	})
	s.mu.Lock()
	s.orbit.Distance = math.Clamp(d, OrbitDistanceMin, OrbitDistanceMax)
	s.mu.Unlock()
}

func (s *Store) SetOrbitHeading(h float32) {
	s.updateActive(func(c *CameraState) {
		c.OrbitHeading = h
	})
	s.mu.Lock()
	s.orbit.Heading = math.NormalizeHeading(h)
	s.mu.Unlock()
}

func (s *Store) SetOrbitPitch(p float32) {
	s.updateActive(func(c *CameraState) {
		c.OrbitPitch = p
	})
	s.mu.Lock()
	s.orbit.Pitch = math.Clamp(p, OrbitPitchMin, OrbitPitchMax)
	s.mu.Unlock()
}

func (s *Store) SetOrbitAutoRotate(degPerSec float32) {
	s.mu.Lock()
	s.orbit.AutoRotateDegPerSec = degPerSec
	s.mu.Unlock()
	s.committed(false)
}
