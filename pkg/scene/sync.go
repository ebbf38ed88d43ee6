// pkg/scene/sync.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

import (
	"context"
	gomath "math"

	"github.com/towerview3d/towerview/pkg/geo"
	"github.com/towerview3d/towerview/pkg/log"
	"github.com/towerview3d/towerview/pkg/math"
	"github.com/towerview3d/towerview/pkg/terrain"
)

// TopdownPitchThreshold is the primary-camera pitch at or below which a
// frame is rendered in the top-down branch.  It is re-evaluated every
// frame from the live camera tilt; there is no stored mode.
const TopdownPitchThreshold = -80.0 // degrees

// TopdownCameraState is the externally readable 2D camera while the
// top-down branch is active; datablock and label placement depend on it.
type TopdownCameraState struct {
	Lat, Lon float64
	Heading  float64
	Active   bool
}

// Syncer copies the primary engine's camera pose into the secondary
// engine once per frame, dispatching between the 3D perspective branch
// and the top-down branch on camera pitch alone.  It is deliberately
// forgiving: with any input missing or uninitialized, SyncFrame is a
// silent no-op for that frame.
type Syncer struct {
	primary    PrimaryCamera
	secondary  SecondaryCamera
	fog        Marker
	decorative []Hideable

	frame   *geo.ReferenceFrame
	terrain *terrain.OffsetResolver

	topdown TopdownCameraState

	lg *log.Logger
}

func NewSyncer(primary PrimaryCamera, secondary SecondaryCamera, offsets *terrain.OffsetResolver, lg *log.Logger) *Syncer {
	return &Syncer{
		primary:   primary,
		secondary: secondary,
		terrain:   offsets,
		lg:        lg,
	}
}

// SetFogMarker registers the fog mesh whose position tracks the camera.
func (s *Syncer) SetFogMarker(m Marker) {
	s.fog = m
}

// AddDecorativeMesh registers a mesh hidden while the top-down branch is
// active.
func (s *Syncer) AddDecorativeMesh(h Hideable) {
	s.decorative = append(s.decorative, h)
}

// SetBasePosition replaces the reference frame for a new base (tower)
// position and starts the asynchronous terrain offset resolution.  The
// old frame is discarded, not updated.
func (s *Syncer) SetBasePosition(ctx context.Context, lat, lon, elevationMSL float64) {
	s.frame = geo.SetupReferenceFrame(lat, lon, elevationMSL)
	if s.terrain != nil {
		s.terrain.Resolve(ctx, lat, lon, elevationMSL)
	}
}

// ReferenceFrame returns the active reference frame, nil before the first
// SetBasePosition call.
func (s *Syncer) ReferenceFrame() *geo.ReferenceFrame {
	return s.frame
}

// TerrainOffset returns the current terrain correction in meters (0
// until resolved).
func (s *Syncer) TerrainOffset() float64 {
	if s.terrain == nil {
		return 0
	}
	return s.terrain.Offset()
}

// TopdownCamera returns the 2D camera state captured by the most recent
// top-down frame.
func (s *Syncer) TopdownCamera() TopdownCameraState {
	return s.topdown
}

// SyncFrame runs once per frame, driven by the host render loop.
func (s *Syncer) SyncFrame() {
	if s.primary == nil || s.secondary == nil || s.frame == nil {
		return
	}

	if s.primary.PitchDegrees() <= TopdownPitchThreshold {
		s.syncTopdown()
	} else {
		s.sync3D()
	}
}

func (s *Syncer) sync3D() {
	posLocal := s.frame.ToLocalPoint(s.primary.PositionECEF())
	dirLocal := s.frame.ToLocalDirection(s.primary.Direction())
	upLocal := s.frame.ToLocalDirection(s.primary.Up())

	pos := geo.LocalToRenderFrame(posLocal)
	dir := geo.LocalToRenderFrame(dirLocal)
	up := geo.LocalToRenderFrame(upLocal)

	pitch, yaw, roll := math.EulerFromDirection(dir, up)

	s.secondary.SetPosition(pos)
	s.secondary.SetRotation(pitch, yaw, roll)
	s.secondary.SetVerticalFOV(s.primary.VerticalFOVDegrees())

	if s.fog != nil {
		s.fog.SetPosition(pos)
	}

	if s.topdown.Active {
		s.topdown.Active = false
		s.setDecorativeVisible(true)
	}
}

func (s *Syncer) syncTopdown() {
	lat, lon, height := s.primary.Geodetic()

	s.topdown = TopdownCameraState{
		Lat:     lat,
		Lon:     lon,
		Heading: s.primary.HeadingDegrees(),
		Active:  true,
	}

	// Camera at the local origin with only the height set, looking
	// straight down.
	pos := [3]float64{0, height, 0}
	s.secondary.SetPosition(pos)
	s.secondary.SetRotation(gomath.Pi/2, 0, 0)
	s.secondary.SetVerticalFOV(s.primary.VerticalFOVDegrees())

	if s.fog != nil {
		s.fog.SetPosition(pos)
	}

	s.setDecorativeVisible(false)
}

func (s *Syncer) setDecorativeVisible(visible bool) {
	for _, h := range s.decorative {
		h.SetVisible(visible)
	}
}
