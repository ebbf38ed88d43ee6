// pkg/camera/state.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package camera

// ViewMode selects between the 3D perspective view and the top-down map
// style view.  The values are persisted, so they stay lowercase strings
// for compatibility with older saved state.
type ViewMode string

const (
	View3D      ViewMode = "3d"
	ViewTopdown ViewMode = "topdown"
)

// FollowMode selects how a followed aircraft is tracked: from the fixed
// tower position, or from an orbiting chase camera.
type FollowMode string

const (
	FollowTower FollowMode = "tower"
	FollowOrbit FollowMode = "orbit"
)

const (
	PitchMin float32 = -90
	PitchMax float32 = 90

	FOVMin float32 = 10
	FOVMax float32 = 120

	TopdownAltitudeMin float32 = 200
	TopdownAltitudeMax float32 = 60000

	FollowZoomMin float32 = 0.5
	FollowZoomMax float32 = 5

	OrbitDistanceMin float32 = 50
	OrbitDistanceMax float32 = 20000
	OrbitPitchMin    float32 = -85
	OrbitPitchMax    float32 = 85

	DefaultPitch3D         float32 = 0
	DefaultFOV3D           float32 = 60
	DefaultFOVTopdown      float32 = 45
	DefaultTopdownAltitude float32 = 3000
	DefaultOrbitDistance   float32 = 500
	DefaultOrbitPitch      float32 = -15

	// MainViewportID is the reserved identity of the always-present
	// full-frame viewport.
	MainViewportID = "main"

	NumBookmarkSlots = 100

	DatablockPositionMin     = 1
	DatablockPositionMax     = 9
	DefaultDatablockPosition = 8
)

// PositionOffset is a free-fly offset from the base tower position,
// meters in the local East-North-Up frame.
type PositionOffset struct {
	X, Y, Z float32
}

// PreFollowState snapshots the fields that following an aircraft
// overrides, so the follow can be cleanly undone.  It is set exactly once
// per follow session and cleared when following stops.
type PreFollowState struct {
	Heading  float32
	Pitch    float32
	FOV      float32
	ViewMode ViewMode
}

// LookAtTarget is a transient animation target for the camera.
type LookAtTarget struct {
	Heading float32
	Pitch   float32
}

// CameraState is the full camera configuration of one viewport.
type CameraState struct {
	ViewMode          ViewMode
	Heading           float32 // [0,360)
	Pitch             float32 // [PitchMin,PitchMax]
	FOV               float32 // vertical, [FOVMin,FOVMax]
	PositionOffset    PositionOffset
	TopdownAltitude   float32 // meters
	FollowingCallsign string  // empty when not following
	FollowMode        FollowMode
	FollowZoom        float32 // FOV scale while following
	PreFollow         *PreFollowState
	OrbitDistance     float32
	OrbitHeading      float32
	OrbitPitch        float32
	LookAt            *LookAtTarget
}

// DefaultCameraState returns the app-default 3D camera; it is also what
// read-selectors hand back when no active viewport exists.
func DefaultCameraState() CameraState {
	return CameraState{
		ViewMode:        View3D,
		Heading:         0,
		Pitch:           DefaultPitch3D,
		FOV:             DefaultFOV3D,
		TopdownAltitude: DefaultTopdownAltitude,
		FollowMode:      FollowOrbit,
		FollowZoom:      1,
		OrbitDistance:   DefaultOrbitDistance,
		OrbitPitch:      DefaultOrbitPitch,
	}
}

// EffectiveFOV is the field of view the renderer should use: the base FOV
// scaled by the follow zoom while a follow session is active.
func (c CameraState) EffectiveFOV() float32 {
	if c.FollowingCallsign != "" && c.FollowZoom > 0 {
		if fov := c.FOV / c.FollowZoom; fov < FOVMin {
			return FOVMin
		} else if fov > FOVMax {
			return FOVMax
		} else {
			return fov
		}
	}
	return c.FOV
}

// stripFollow returns a copy with the transient follow/animation state
// cleared; used when camera state is copied to a new viewport or
// persisted.
func (c CameraState) stripFollow() CameraState {
	c.FollowingCallsign = ""
	c.PreFollow = nil
	c.LookAt = nil
	return c
}

// Layout is a viewport rectangle in normalized [0,1] units plus z-order.
type Layout struct {
	X, Y          float32
	Width, Height float32
	Z             int
}

func fullFrameLayout() Layout {
	return Layout{X: 0, Y: 0, Width: 1, Height: 1, Z: 0}
}

func (l Layout) isFullFrame() bool {
	return l.Width >= 0.999 && l.Height >= 0.999
}

// Viewport is one independently configurable camera view; "main" is
// always present and full-frame, insets come and go.
type Viewport struct {
	ID     string
	Layout Layout
	Camera CameraState
	Label  string
}

// Bookmark is a named camera snapshot stored in one of the fixed slots.
type Bookmark struct {
	Name            string
	ViewMode        ViewMode
	Heading         float32
	Pitch           float32
	FOV             float32
	TopdownAltitude float32
	PositionOffset  PositionOffset
}

// Default3D is the saved per-airport default for the 3D view.
type Default3D struct {
	Heading        float32
	Pitch          float32
	FOV            float32
	PositionOffset PositionOffset
}

// Default2D is the saved per-airport default for the top-down view.
type Default2D struct {
	Heading         float32
	TopdownAltitude float32
}

// AirportConfig is the persisted per-airport bundle.  Bookmarks and the
// datablock position are carried forward on every save of the viewport
// snapshot; they are never dropped by an overwrite.
type AirportConfig struct {
	Viewports []Viewport
	ActiveID  string

	// LegacyDefault is the old single full-snapshot default, kept only so
	// older configs keep working; new saves go to Default3D/Default2D.
	LegacyDefault *CameraState

	Default3D *Default3D
	Default2D *Default2D

	Bookmarks map[int]*Bookmark

	// DatablockPosition is numpad-style 1-9 label placement.
	DatablockPosition int
}

// OrbitSettings is the last-used orbit-follow geometry, persisted
// independently of any airport and used to seed new viewports.
type OrbitSettings struct {
	Distance float32
	Heading  float32
	Pitch    float32

	AutoRotateDegPerSec float32
}

func DefaultOrbitSettings() OrbitSettings {
	return OrbitSettings{
		Distance: DefaultOrbitDistance,
		Pitch:    DefaultOrbitPitch,
	}
}
