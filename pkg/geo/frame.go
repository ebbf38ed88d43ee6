// pkg/geo/frame.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	gomath "math"

	"github.com/towerview3d/towerview/pkg/math"

	"github.com/wroge/wgs84"
)

// ReferenceFrame is the East-North-Up tangent plane at a base geographic
// point (typically a tower position).  It holds the 4x4 homogeneous
// transform from local ENU coordinates to the Earth-fixed geocentric
// frame and its inverse.  Frames are immutable once built; a base
// position change makes a new one.
type ReferenceFrame struct {
	Lat, Lon  float64 // degrees
	HeightMSL float64 // meters

	Origin        [3]float64 // base point in the Earth-fixed frame
	LocalToGlobal math.Matrix4
	GlobalToLocal math.Matrix4
}

// SetupReferenceFrame computes the tangent-plane transforms at the given
// geographic point.  NaN inputs propagate into the matrices; callers are
// expected to validate geographic inputs beforehand.
func SetupReferenceFrame(lat, lon, heightMSL float64) *ReferenceFrame {
	x, y, z := geodeticToECEF(lon, lat, heightMSL)
	origin := [3]float64{x, y, z}

	sLat, cLat := gomath.Sincos(lat * gomath.Pi / 180)
	sLon, cLon := gomath.Sincos(lon * gomath.Pi / 180)

	east := [3]float64{-sLon, cLon, 0}
	north := [3]float64{-sLat * cLon, -sLat * sLon, cLat}
	up := [3]float64{cLat * cLon, cLat * sLon, sLat}

	l2g := math.MakeRigidTransform(east, north, up, origin)
	return &ReferenceFrame{
		Lat:           lat,
		Lon:           lon,
		HeightMSL:     heightMSL,
		Origin:        origin,
		LocalToGlobal: l2g,
		GlobalToLocal: l2g.RigidInverse(),
	}
}

// ToLocalPoint transforms an Earth-fixed position into the local ENU
// frame (translation included).
func (f *ReferenceFrame) ToLocalPoint(p [3]float64) [3]float64 {
	return f.GlobalToLocal.TransformPoint(p)
}

// ToLocalDirection transforms an Earth-fixed direction or up vector into
// the local ENU frame.  Only the rotational part of the transform is
// applied.
func (f *ReferenceFrame) ToLocalDirection(v [3]float64) [3]float64 {
	return f.GlobalToLocal.TransformVector(v)
}

// ToGlobalPoint transforms a local ENU position into the Earth-fixed
// frame.
func (f *ReferenceFrame) ToGlobalPoint(p [3]float64) [3]float64 {
	return f.LocalToGlobal.TransformPoint(p)
}

// ToGlobalDirection transforms a local ENU direction into the Earth-fixed
// frame.
func (f *ReferenceFrame) ToGlobalDirection(v [3]float64) [3]float64 {
	return f.LocalToGlobal.TransformVector(v)
}

func geodeticToECEF(lon, lat, h float64) (x, y, z float64) {
	return wgs84.LonLat().To(wgs84.XYZ())(lon, lat, h)
}

// ECEFToGeodetic returns longitude, latitude (degrees) and ellipsoidal
// height for an Earth-fixed position.
func ECEFToGeodetic(p [3]float64) (lon, lat, h float64) {
	return wgs84.XYZ().To(wgs84.LonLat())(p[0], p[1], p[2])
}

// GeodeticToECEF returns the Earth-fixed position for the given longitude,
// latitude (degrees) and ellipsoidal height.
func GeodeticToECEF(lon, lat, h float64) [3]float64 {
	x, y, z := geodeticToECEF(lon, lat, h)
	return [3]float64{x, y, z}
}
