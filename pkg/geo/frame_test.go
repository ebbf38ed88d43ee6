// pkg/geo/frame_test.go
// Copyright(c) 2026 towerview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	gomath "math"
	"testing"

	"github.com/towerview3d/towerview/pkg/math"
)

func TestReferenceFrameOrigin(t *testing.T) {
	f := SetupReferenceFrame(37.6188, -122.3756, 100) // KSFO-ish

	// The base point maps to the local origin.
	l := f.ToLocalPoint(f.Origin)
	if math.Length3d(l) > 1e-6 {
		t.Errorf("base point maps to %v, expected the origin", l)
	}

	// And back.
	g := f.ToGlobalPoint([3]float64{0, 0, 0})
	if math.Distance3d(g, f.Origin) > 1e-6 {
		t.Errorf("local origin maps to %v, expected %v", g, f.Origin)
	}
}

func TestReferenceFrameRoundTrip(t *testing.T) {
	f := SetupReferenceFrame(51.4775, -0.4614, 25) // EGLL-ish

	for _, p := range [][3]float64{
		{0, 0, 0},
		{100, -250, 30},
		{-5000, 7000, -12},
		{0.001, 0.002, 0.003},
	} {
		q := f.ToLocalPoint(f.ToGlobalPoint(p))
		if math.Distance3d(p, q) > 1e-6 {
			t.Errorf("round trip %v -> %v", p, q)
		}
	}
}

func TestENUAxes(t *testing.T) {
	f := SetupReferenceFrame(37.6188, -122.3756, 100)

	// Moving along local north raises latitude and leaves longitude nearly
	// unchanged; local east raises longitude.
	lonN, latN, _ := ECEFToGeodetic(f.ToGlobalPoint([3]float64{0, 1000, 0}))
	if latN <= f.Lat {
		t.Errorf("north axis lowered latitude: %v", latN)
	}
	if gomath.Abs(lonN-f.Lon) > 0.001 {
		t.Errorf("north axis moved longitude: %v", lonN)
	}

	lonE, latE, _ := ECEFToGeodetic(f.ToGlobalPoint([3]float64{1000, 0, 0}))
	if lonE <= f.Lon {
		t.Errorf("east axis lowered longitude: %v", lonE)
	}
	if gomath.Abs(latE-f.Lat) > 0.001 {
		t.Errorf("east axis moved latitude: %v", latE)
	}

	// Local up raises ellipsoidal height by the displacement.
	_, _, h0 := ECEFToGeodetic(f.Origin)
	_, _, h1 := ECEFToGeodetic(f.ToGlobalPoint([3]float64{0, 0, 500}))
	if gomath.Abs((h1-h0)-500) > 0.01 {
		t.Errorf("up axis: height rose by %v, expected 500", h1-h0)
	}
}

func TestDirectionIgnoresTranslation(t *testing.T) {
	f := SetupReferenceFrame(35.5533, 139.7811, 6) // RJTT-ish

	// Direction transforms are pure rotation: unit length is preserved and
	// the local origin direction is not offset by the frame origin.
	for _, v := range [][3]float64{
		{1, 0, 0},
		{0, 0, 1},
		{0.267, -0.534, 0.802},
	} {
		g := f.ToGlobalDirection(v)
		if gomath.Abs(math.Length3d(g)-math.Length3d(v)) > 1e-9 {
			t.Errorf("direction %v changed length: %v", v, g)
		}
		l := f.ToLocalDirection(g)
		if math.Distance3d(l, v) > 1e-9 {
			t.Errorf("direction round trip %v -> %v", v, l)
		}
	}
}

func TestRenderFrameRemap(t *testing.T) {
	l := [3]float64{1, 2, 3} // east, north, up
	r := LocalToRenderFrame(l)
	if r != [3]float64{1, 3, 2} {
		t.Errorf("LocalToRenderFrame(%v): got %v", l, r)
	}
	if got := RenderToLocalFrame(r); got != l {
		t.Errorf("render round trip: %v -> %v", l, got)
	}
}
