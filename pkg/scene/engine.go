// pkg/scene/engine.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scene

// The two rendering engines are external collaborators; this package only
// depends on the narrow camera surface below.  The primary (geospatial)
// engine is read-only, the secondary (local) engine write-only.

type FrustumType int

const (
	FrustumPerspective FrustumType = iota
	FrustumOrthographic
)

// PrimaryCamera is the live camera of the geospatial globe engine.
// Positions are Earth-fixed geocentric meters; direction and up are unit
// vectors in the same frame.
type PrimaryCamera interface {
	PositionECEF() [3]float64
	Direction() [3]float64
	Up() [3]float64
	HeadingDegrees() float64
	PitchDegrees() float64
	VerticalFOVDegrees() float64
	Frustum() FrustumType

	// Geodetic returns the camera's geographic position: latitude and
	// longitude in degrees, height in meters.
	Geodetic() (lat, lon, height float64)
}

// SecondaryCamera is the local render engine's camera.  Rotation is the
// engine's pitch/yaw/roll Euler angles in radians.
type SecondaryCamera interface {
	SetPosition(p [3]float64)
	SetRotation(pitch, yaw, roll float64)
	SetVerticalFOV(degrees float64)
}

// Marker is any mesh whose position is slaved to the camera (the fog
// marker, most importantly).
type Marker interface {
	SetPosition(p [3]float64)
}

// Hideable is a decorative mesh (e.g. the cloud planes) toggled off in
// top-down mode.
type Hideable interface {
	SetVisible(visible bool)
}
