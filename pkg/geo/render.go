// pkg/geo/render.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

// The local tangent frame is East-North-Up with z up; the render engine
// is y-up with z pointing north.  The remap between them is a pure axis
// permutation, not a rotation, so it gets its own pair of functions
// rather than being folded into the reference-frame matrices.

// LocalToRenderFrame remaps a local ENU vector (east, north, up) into
// render-frame axes (east, up, north).
func LocalToRenderFrame(l [3]float64) [3]float64 {
	return [3]float64{l[0], l[2], l[1]}
}

// RenderToLocalFrame is the inverse permutation of LocalToRenderFrame.
func RenderToLocalFrame(r [3]float64) [3]float64 {
	return [3]float64{r[0], r[2], r[1]}
}
