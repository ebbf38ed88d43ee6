// pkg/math/euler.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

// RollEpsilon is the threshold below which the component of the up vector
// orthogonal to the view direction is considered degenerate (camera
// looking straight up or down); roll is then defined to be zero rather
// than letting atan2 of near-zero terms wander.
const RollEpsilon = 1e-6

// EulerFromDirection decomposes a render-frame view direction and up
// vector into pitch/yaw/roll Euler angles (radians) in the render
// engine's convention: +Y up, yaw about +Y measured from +Z toward +X,
// positive pitch tilting the view downward, roll about the view axis.
//
// The decomposition is yaw-then-pitch-then-roll: yaw comes from the
// horizontal direction components, pitch from the vertical one (via an
// inverse sine with clamped argument, so it stays in ±90°), and roll from
// comparing the actual up vector against the up vector implied by yaw and
// pitch alone.
func EulerFromDirection(dir, up [3]float64) (pitch, yaw, roll float64) {
	d := Normalize3d(dir)

	yaw = gomath.Atan2(d[0], d[2])
	pitch = -gomath.Asin(gomath.Max(-1, gomath.Min(1, d[1])))

	sy, cy := gomath.Sincos(yaw)
	sp, cp := gomath.Sincos(pitch)

	// Up vector implied by yaw+pitch with zero roll, and the matching
	// right vector.
	u0 := [3]float64{sy * sp, cp, cy * sp}
	r0 := Cross3d(u0, d)

	// Component of the given up vector orthogonal to the view direction.
	uperp := Sub3d(up, Scale3d(d, Dot3d(up, d)))
	if Length3d(uperp) < RollEpsilon {
		// Looking straight up/down; roll is meaningless, pin it to zero.
		return pitch, yaw, 0
	}

	roll = gomath.Atan2(Dot3d(uperp, r0), Dot3d(uperp, u0))
	return pitch, yaw, roll
}

// DirectionFromEuler is the inverse of EulerFromDirection for the
// zero-roll case; handy for constructing test vectors and look-at targets.
func DirectionFromEuler(pitch, yaw float64) [3]float64 {
	sy, cy := gomath.Sincos(yaw)
	sp, cp := gomath.Sincos(pitch)
	return [3]float64{sy * cp, -sp, cy * cp}
}
