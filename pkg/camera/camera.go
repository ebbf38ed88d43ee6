// pkg/camera/camera.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package camera

import (
	"github.com/towerview3d/towerview/pkg/math"
)

// Direct camera setters and their delta-adjusters.  Adjusters read the
// current value and delegate to the setter; range normalization is
// applied once, on commit (see enforceModeInvariant).

func (s *Store) SetViewMode(mode ViewMode) {
	if mode != View3D && mode != ViewTopdown {
		s.lg.Debugf("%s: ignoring invalid view mode", mode)
		return
	}
	s.updateActive(func(c *CameraState) {
		c.ViewMode = mode
	})
}

func (s *Store) ToggleViewMode() {
	cur := s.ActiveCamera().ViewMode
	if cur == ViewTopdown {
		s.SetViewMode(View3D)
	} else {
		s.SetViewMode(ViewTopdown)
	}
}

func (s *Store) SetHeading(h float32) {
	s.updateActive(func(c *CameraState) {
		c.Heading = h
	})
}

func (s *Store) AdjustHeading(delta float32) {
	s.SetHeading(s.ActiveCamera().Heading + delta)
}

func (s *Store) SetPitch(p float32) {
	s.updateActive(func(c *CameraState) {
		c.Pitch = p
	})
}

func (s *Store) AdjustPitch(delta float32) {
	s.SetPitch(s.ActiveCamera().Pitch + delta)
}

func (s *Store) SetFOV(fov float32) {
	s.updateActive(func(c *CameraState) {
		c.FOV = fov
	})
}

func (s *Store) AdjustFOV(delta float32) {
	s.SetFOV(s.ActiveCamera().FOV + delta)
}

func (s *Store) SetTopdownAltitude(alt float32) {
	s.updateActive(func(c *CameraState) {
		c.TopdownAltitude = alt
	})
}

func (s *Store) AdjustTopdownAltitude(delta float32) {
	s.SetTopdownAltitude(s.ActiveCamera().TopdownAltitude + delta)
}

func (s *Store) SetPositionOffset(off PositionOffset) {
	s.updateActive(func(c *CameraState) {
		c.PositionOffset = off
	})
}

// NudgePositionOffset moves the free-fly offset relative to the current
// heading: forward/right in the horizontal plane, up vertically (meters).
func (s *Store) NudgePositionOffset(forward, right, up float32) {
	cam := s.ActiveCamera()
	sh, ch := math.Sin(math.Radians(cam.Heading)), math.Cos(math.Radians(cam.Heading))
	s.SetPositionOffset(PositionOffset{
		X: cam.PositionOffset.X + forward*sh + right*ch,
		Y: cam.PositionOffset.Y + forward*ch - right*sh,
		Z: cam.PositionOffset.Z + up,
	})
}

// SetLookAtTarget sets a transient animation target; normalization is the
// same as for the direct setters.
func (s *Store) SetLookAtTarget(heading, pitch float32) {
	s.updateActive(func(c *CameraState) {
		c.LookAt = &LookAtTarget{Heading: heading, Pitch: pitch}
	})
}

func (s *Store) ClearLookAtTarget() {
	s.updateActive(func(c *CameraState) {
		c.LookAt = nil
	})
}

// ResetView is the panic button: mode-appropriate hard-coded defaults,
// follow and orbit state cleared to the global constants.  It is
// intentionally independent of any saved per-airport default.
func (s *Store) ResetView() {
	s.updateActive(func(c *CameraState) {
		c.FollowingCallsign = ""
		c.PreFollow = nil
		c.LookAt = nil
		c.FollowZoom = 1
		c.OrbitDistance = DefaultOrbitDistance
		c.OrbitHeading = 0
		c.OrbitPitch = DefaultOrbitPitch
		c.PositionOffset = PositionOffset{}
		c.Heading = 0
		if c.ViewMode == ViewTopdown {
			c.FOV = DefaultFOVTopdown
			c.TopdownAltitude = DefaultTopdownAltitude
		} else {
			c.Pitch = DefaultPitch3D
			c.FOV = DefaultFOV3D
		}
	})
}
