// pkg/math/vecmat.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

///////////////////////////////////////////////////////////////////////////
// point 3d
//
// Various useful functions for arithmetic with 3D points/vectors.  These
// are float64 throughout: positions in the Earth-fixed frame are on the
// order of 1e7 meters and float32 only leaves meter-scale precision there.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add3d(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// a-b
func Sub3d(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// a*s
func Scale3d(a [3]float64, s float64) [3]float64 {
	return [3]float64{s * a[0], s * a[1], s * a[2]}
}

func Dot3d(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross3d(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Length of v
func Length3d(v [3]float64) float64 {
	return gomath.Sqrt(Dot3d(v, v))
}

// Distance between two points
func Distance3d(a, b [3]float64) float64 {
	return Length3d(Sub3d(a, b))
}

// Normalizes the given vector.
func Normalize3d(a [3]float64) [3]float64 {
	l := Length3d(a)
	if l == 0 {
		return [3]float64{}
	}
	return Scale3d(a, 1/l)
}

///////////////////////////////////////////////////////////////////////////
// 4x4 matrix

// Matrix4 is a 4x4 homogeneous transformation, row-major.
type Matrix4 [4][4]float64

func Identity4x4() Matrix4 {
	var m Matrix4
	m[0][0] = 1
	m[1][1] = 1
	m[2][2] = 1
	m[3][3] = 1
	return m
}

// MakeRigidTransform builds a Matrix4 from three orthonormal basis vectors
// (as its rotational columns) and a translation.
func MakeRigidTransform(x, y, z, t [3]float64) Matrix4 {
	return Matrix4{
		{x[0], y[0], z[0], t[0]},
		{x[1], y[1], z[1], t[1]},
		{x[2], y[2], z[2], t[2]},
		{0, 0, 0, 1},
	}
}

func (m Matrix4) PostMultiply(m2 Matrix4) Matrix4 {
	var result Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			result[i][j] = m[i][0]*m2[0][j] + m[i][1]*m2[1][j] + m[i][2]*m2[2][j] + m[i][3]*m2[3][j]
		}
	}
	return result
}

// RigidInverse inverts a rigid (rotation + translation) transform: the
// rotational part is transposed and the translation re-derived from it.
// This is exact for the reference-frame matrices we build and avoids a
// general 4x4 inversion.
func (m Matrix4) RigidInverse() Matrix4 {
	var r Matrix4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	for i := 0; i < 3; i++ {
		r[i][3] = -(r[i][0]*m[0][3] + r[i][1]*m[1][3] + r[i][2]*m[2][3])
	}
	r[3][3] = 1
	return r
}

// TransformPoint applies the full transform, translation included.
func (m Matrix4) TransformPoint(p [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*p[0] + m[0][1]*p[1] + m[0][2]*p[2] + m[0][3],
		m[1][0]*p[0] + m[1][1]*p[1] + m[1][2]*p[2] + m[1][3],
		m[2][0]*p[0] + m[2][1]*p[1] + m[2][2]*p[2] + m[2][3],
	}
}

// TransformVector applies only the rotational part of the transform;
// direction and up vectors must not be translated.
func (m Matrix4) TransformVector(v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}
